package store

import "trade_console/internal/domain"

// TooltipState is the tooltip currently shown.
type TooltipState struct {
	Visible bool
	Message string
	Anchor  domain.Point
	Kind    domain.TooltipKind
}

// TooltipStore is the tooltip sink the presentation layer renders from.
type TooltipStore struct {
	state *Value[TooltipState]
}

// NewTooltipStore creates a hidden tooltip.
func NewTooltipStore() *TooltipStore {
	return &TooltipStore{state: NewValue(TooltipState{})}
}

// ShowTooltip shows message at anchor.
func (s *TooltipStore) ShowTooltip(message string, anchor domain.Point, kind domain.TooltipKind) {
	s.state.Set(TooltipState{Visible: true, Message: message, Anchor: anchor, Kind: kind})
}

// HideTooltip hides the tooltip.
func (s *TooltipStore) HideTooltip() {
	s.state.Set(TooltipState{})
}

// State returns the tooltip state.
func (s *TooltipStore) State() TooltipState {
	return s.state.Get()
}
