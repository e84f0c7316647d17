// Package event defines the inputs the console processes in order.
package event

import "trade_console/internal/domain"

// Type identifies an event kind.
type Type string

const (
	TypeKeyInput       Type = "key_input"
	TypeStep           Type = "step"
	TypeFocus          Type = "focus"
	TypeMobileClick    Type = "mobile_click"
	TypeSelect         Type = "select"
	TypeTab            Type = "tab"
	TypeSearch         Type = "search"
	TypeClearSearch    Type = "clear_search"
	TypeToggleFavorite Type = "toggle_favorite"
	TypeCatalog        Type = "catalog"
	TypeCurrency       Type = "currency"
	TypeSync           Type = "sync"
)

// Event is anything posted to the console inbox.
type Event interface {
	GetType() Type
	GetTs() int64
}

// BaseEvent carries the post time in unix milliseconds.
type BaseEvent struct {
	Ts int64 `json:"ts"`
}

func (e BaseEvent) GetTs() int64 { return e.Ts }

// KeyInputEvent is the raw stake input value after a keystroke.
type KeyInputEvent struct {
	BaseEvent
	Raw   string `json:"raw"`
	Caret int    `json:"caret"`
}

func (e *KeyInputEvent) GetType() Type { return TypeKeyInput }

// StepEvent is a click on the stake increment or decrement button.
type StepEvent struct {
	BaseEvent
	Up bool `json:"up"`
}

func (e *StepEvent) GetType() Type { return TypeStep }

// FocusEvent is the stake input gaining or losing focus.
type FocusEvent struct {
	BaseEvent
	Focused bool `json:"focused"`
}

func (e *FocusEvent) GetType() Type { return TypeFocus }

// MobileClickEvent is a tap on the stake field on a small screen.
type MobileClickEvent struct {
	BaseEvent
}

func (e *MobileClickEvent) GetType() Type { return TypeMobileClick }

// SelectEvent is a click on a market row.
type SelectEvent struct {
	BaseEvent
	Symbol string `json:"symbol"`
}

func (e *SelectEvent) GetType() Type { return TypeSelect }

// TabEvent switches the market list tab, by id or label.
type TabEvent struct {
	BaseEvent
	Tab string `json:"tab"`
}

func (e *TabEvent) GetType() Type { return TypeTab }

// SearchEvent updates the market search query.
type SearchEvent struct {
	BaseEvent
	Query string `json:"query"`
}

func (e *SearchEvent) GetType() Type { return TypeSearch }

// ClearSearchEvent empties the market search query.
type ClearSearchEvent struct {
	BaseEvent
}

func (e *ClearSearchEvent) GetType() Type { return TypeClearSearch }

// ToggleFavoriteEvent is a click on a market's star.
type ToggleFavoriteEvent struct {
	BaseEvent
	Symbol string `json:"symbol"`
}

func (e *ToggleFavoriteEvent) GetType() Type { return TypeToggleFavorite }

// CatalogEvent delivers a catalog snapshot. It may be posted from any goroutine.
type CatalogEvent struct {
	BaseEvent
	Snapshot domain.CatalogSnapshot `json:"-"`
}

func (e *CatalogEvent) GetType() Type { return TypeCatalog }

// CurrencyEvent switches the account settlement currency.
type CurrencyEvent struct {
	BaseEvent
	Currency string `json:"currency"`
}

func (e *CurrencyEvent) GetType() Type { return TypeCurrency }

// SyncEvent is closed by the console once every earlier event has been rendered.
type SyncEvent struct {
	BaseEvent
	Done chan struct{} `json:"-"`
}

func (e *SyncEvent) GetType() Type { return TypeSync }
