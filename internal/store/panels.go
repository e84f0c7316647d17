package store

// SheetState describes the mobile bottom sheet.
type SheetState struct {
	Visible bool
	Key     string
	Height  string
}

// Panels holds the bottom sheet and left sidebar visibility.
type Panels struct {
	sheet   *Value[SheetState]
	sidebar *Value[bool]
}

// NewPanels creates panels with everything hidden.
func NewPanels() *Panels {
	return &Panels{
		sheet:   NewValue(SheetState{}),
		sidebar: NewValue(false),
	}
}

// SetBottomSheet shows or hides the bottom sheet. Hiding clears its content key.
func (p *Panels) SetBottomSheet(visible bool) {
	if !visible {
		p.sheet.Set(SheetState{})
		return
	}
	st := p.sheet.Get()
	st.Visible = true
	p.sheet.Set(st)
}

// OpenBottomSheet shows the bottom sheet with the given panel and height.
func (p *Panels) OpenBottomSheet(key, height string) {
	p.sheet.Set(SheetState{Visible: true, Key: key, Height: height})
}

// BottomSheet returns the bottom sheet state.
func (p *Panels) BottomSheet() SheetState {
	return p.sheet.Get()
}

// SetLeftSidebar shows or hides the left sidebar.
func (p *Panels) SetLeftSidebar(visible bool) {
	p.sidebar.Set(visible)
}

// LeftSidebar reports whether the left sidebar is visible.
func (p *Panels) LeftSidebar() bool {
	return p.sidebar.Get()
}
