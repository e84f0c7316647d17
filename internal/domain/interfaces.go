package domain

// KeyValueStore is the persisted string store favorites and the last viewed market live in.
// GetItem reports false when the key has never been written.
type KeyValueStore interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}

// TooltipSink presents a message anchored at a screen position.
type TooltipSink interface {
	ShowTooltip(message string, anchor Point, kind TooltipKind)
	HideTooltip()
}
