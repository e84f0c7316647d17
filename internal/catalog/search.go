package catalog

import (
	"strings"

	"trade_console/internal/domain"

	"golang.org/x/text/cases"
)

// Filter narrows a view to instruments whose display name, short name or
// symbol contains the query, ignoring case. A blank query returns view as-is.
func Filter(view domain.CategoryView, query string) domain.CategoryView {
	query = strings.TrimSpace(query)
	if query == "" {
		return view
	}

	fold := cases.Fold()
	needle := fold.String(query)
	out := domain.CategoryView{ID: view.ID, Label: view.Label, Instruments: []domain.Instrument{}}
	for _, instr := range view.Instruments {
		if matches(fold, instr, needle) {
			out.Instruments = append(out.Instruments, instr)
		}
	}
	return out
}

func matches(fold cases.Caser, instr domain.Instrument, needle string) bool {
	for _, field := range []string{instr.DisplayName, instr.ShortName, instr.Symbol} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// SearchResult tells "nothing typed yet" apart from "nothing matched".
type SearchResult struct {
	View  domain.CategoryView
	Query string
}

// Search filters a view and keeps the query for the empty-result message.
func Search(view domain.CategoryView, query string) SearchResult {
	return SearchResult{View: Filter(view, query), Query: query}
}

// Active reports whether a non-blank query was applied.
func (r SearchResult) Active() bool {
	return queryActive(r.Query)
}

func queryActive(query string) bool {
	return strings.TrimSpace(query) != ""
}

// NoMatches reports a true empty result for an active query.
func (r SearchResult) NoMatches() bool {
	return r.Active() && r.View.Len() == 0
}

// NoMatchesMessage is the message shown when a query matched nothing.
func NoMatchesMessage(query string) string {
	return `No markets found matching "` + query + `"`
}
