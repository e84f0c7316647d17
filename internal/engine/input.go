package engine

import "trade_console/internal/domain"

// TextInput is the headless stake input: fixed bounds, a focus flag and a caret.
// It is only touched from the console goroutine.
type TextInput struct {
	bounds  domain.Rect
	focused bool
	caret   int
}

// NewTextInput creates an unfocused input at bounds.
func NewTextInput(bounds domain.Rect) *TextInput {
	return &TextInput{bounds: bounds, caret: -1}
}

func (in *TextInput) Bounds() domain.Rect { return in.bounds }
func (in *TextInput) Focused() bool { return in.focused }
func (in *TextInput) SetCaret(pos int) { in.caret = pos }

// SetFocused updates the focus flag.
func (in *TextInput) SetFocused(focused bool) {
	in.focused = focused
}

// Caret returns the caret position, or -1 when it was never placed.
func (in *TextInput) Caret() int {
	return in.caret
}
