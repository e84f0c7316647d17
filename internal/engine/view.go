package engine

import (
	"fmt"
	"io"
	"strings"

	"trade_console/internal/catalog"
	"trade_console/internal/domain"
	"trade_console/internal/stake"
	"trade_console/internal/store"
)

// StakeView is the rendered stake field.
type StakeView struct {
	Value     string         `json:"value"`
	Display   string         `json:"display"`
	Committed string         `json:"committed"`
	Verdict   domain.Verdict `json:"verdict"`
	Selected  bool           `json:"selected"`
	Caret     int            `json:"caret"`
}

// MarketView is the rendered market list.
type MarketView struct {
	State     string                `json:"state"`
	Error     string                `json:"error,omitempty"`
	Tab       string                `json:"tab"`
	Tabs      []catalog.Tab         `json:"tabs"`
	Query     string                `json:"query"`
	Sections  []domain.CategoryView `json:"sections"`
	NoMatches string                `json:"no_matches,omitempty"`
	Favorites []string              `json:"favorites"`
}

// View is everything the presentation layer needs after one event.
type View struct {
	Session    string             `json:"session"`
	Seq        uint64             `json:"seq"`
	Currency   string             `json:"currency"`
	Symbol     string             `json:"symbol"`
	Instrument string             `json:"instrument"`
	Stake      StakeView          `json:"stake"`
	Markets    MarketView         `json:"markets"`
	Tooltip    store.TooltipState `json:"tooltip"`
	Sheet      store.SheetState   `json:"sheet"`
	Sidebar    bool               `json:"sidebar"`
	LastError  string             `json:"last_error,omitempty"`
}

func (s *Console) buildView() View {
	c := s.c
	currency := c.Client.Currency()
	local := c.Field.LocalValue()

	listing := c.Selector.Listing()
	markets := MarketView{
		State:    listing.State.String(),
		Tab:      listing.Tab,
		Tabs:     c.Selector.Tabs(),
		Query:    listing.Query,
		Sections: listing.Sections,
	}
	if listing.Err != nil {
		markets.Error = listing.Err.Error()
	}
	if listing.NoMatches {
		markets.NoMatches = catalog.NoMatchesMessage(listing.Query)
	}
	if c.Favorites != nil {
		markets.Favorites = c.Favorites.Set().Symbols()
	}

	caret := -1
	if c.Input != nil {
		caret = c.Input.Caret()
	}

	return View{
		Session:    s.session,
		Seq:        s.seq,
		Currency:   currency,
		Symbol:     c.Trade.Symbol(),
		Instrument: c.Trade.Instrument(),
		Stake: StakeView{
			Value:     local,
			Display:   stake.Display(local, currency),
			Committed: c.Trade.Stake(),
			Verdict:   c.Field.Verdict(),
			Selected:  c.Field.IsSelected(),
			Caret:     caret,
		},
		Markets:   markets,
		Tooltip:   c.Tooltip.State(),
		Sheet:     c.Panels.BottomSheet(),
		Sidebar:   c.Panels.LeftSidebar(),
		LastError: s.lastErr,
	}
}

// WriteView prints a plain-text rendering of v.
func WriteView(w io.Writer, v View) {
	fmt.Fprintf(w, "session %s #%d\n", v.Session, v.Seq)
	fmt.Fprintf(w, "instrument: %s\n", orDash(v.Instrument))
	fmt.Fprintf(w, "stake: %s (committed %s)\n", v.Stake.Display, orDash(v.Stake.Committed))
	if v.Tooltip.Visible {
		fmt.Fprintf(w, "  ! %s\n", v.Tooltip.Message)
	}
	if v.Sheet.Visible {
		fmt.Fprintf(w, "sheet: %s %s\n", v.Sheet.Key, v.Sheet.Height)
	}

	m := v.Markets
	labels := make([]string, len(m.Tabs))
	for i, tab := range m.Tabs {
		labels[i] = tab.Label
		if tab.ID == m.Tab {
			labels[i] = "[" + tab.Label + "]"
		}
	}
	fmt.Fprintf(w, "markets (%s): %s\n", m.State, strings.Join(labels, " "))
	if m.Query != "" {
		fmt.Fprintf(w, "search: %q\n", m.Query)
	}

	switch {
	case m.Error != "":
		fmt.Fprintf(w, "  %s\n", m.Error)
	case m.NoMatches != "":
		fmt.Fprintf(w, "  %s\n", m.NoMatches)
	}

	favs := catalog.NewFavoriteSet(m.Favorites...)
	for _, section := range m.Sections {
		fmt.Fprintf(w, "%s\n", section.Label)
		for _, instr := range section.Instruments {
			star := " "
			if favs.Contains(instr.Symbol) {
				star = "*"
			}
			mark := ""
			if instr.Symbol == v.Instrument {
				mark = " <"
			}
			if !instr.IsOpen() {
				mark += " (closed)"
			}
			fmt.Fprintf(w, "  %s %-10s %s%s\n", star, instr.Symbol, instr.DisplayName, mark)
		}
	}
	if v.LastError != "" {
		fmt.Fprintf(w, "error: %s\n", v.LastError)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
