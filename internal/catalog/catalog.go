// Package catalog builds the categorized instrument views of the market selector,
// filters them, keeps favorites and gates instrument selection.
package catalog

import (
	"strings"

	"trade_console/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// View ids that are not market categories.
const (
	AllID        = "all"
	FavouritesID = "favourites"
)

// CategoryConfig is one entry of the fixed category priority order.
type CategoryConfig struct {
	ID    domain.Category `yaml:"id"`
	Label string          `yaml:"label"`
}

// DefaultCategories is the priority order used when none is configured.
var DefaultCategories = []CategoryConfig{
	{ID: domain.CategorySynthetic, Label: "Derived"},
	{ID: domain.CategoryForex, Label: "Forex"},
	{ID: domain.CategoryCommodities, Label: "Commodities"},
	{ID: domain.CategoryStockIndices, Label: "Stock indices"},
	{ID: domain.CategoryCryptocurrency, Label: "Cryptocurrencies"},
}

// Views is the result of a catalog build.
type Views struct {
	Categories []domain.CategoryView
	All        domain.CategoryView
	Favourites domain.CategoryView
}

// Category returns the view for a category id.
func (v Views) Category(id string) (domain.CategoryView, bool) {
	for _, c := range v.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.CategoryView{}, false
}

// Builder turns market groups into category views. Build is pure: the same
// groups and favorites always produce the same views in the same order.
type Builder struct {
	order  []CategoryConfig
	labels *Labeler
}

// NewBuilder creates a builder. Empty order means DefaultCategories.
func NewBuilder(order []CategoryConfig, labels *Labeler) *Builder {
	if len(order) == 0 {
		order = DefaultCategories
	}
	if labels == nil {
		labels = NewLabeler(nil)
	}
	return &Builder{order: order, labels: labels}
}

// Build categorizes the groups and overlays the favorite set.
// Categories missing from the priority order follow it in arrival order.
// A symbol delivered twice keeps its first occurrence.
func (b *Builder) Build(groups []domain.MarketGroup, favorites FavoriteSet) Views {
	byCategory := make(map[domain.Category][]domain.Instrument)
	var arrival []domain.Category
	seen := make(map[string]bool)

	for _, g := range groups {
		closed := make(map[string]bool, len(g.Closed))
		for _, s := range g.Closed {
			closed[s] = true
		}
		if _, ok := byCategory[g.MarketName]; !ok {
			arrival = append(arrival, g.MarketName)
			byCategory[g.MarketName] = nil
		}
		for _, symbol := range g.Instruments {
			if symbol == "" || seen[symbol] {
				continue
			}
			seen[symbol] = true
			byCategory[g.MarketName] = append(byCategory[g.MarketName], b.instrument(symbol, g.MarketName, closed[symbol]))
		}
	}

	views := Views{
		All:        domain.CategoryView{ID: AllID, Label: "All", Instruments: []domain.Instrument{}},
		Favourites: domain.CategoryView{ID: FavouritesID, Label: "Favourites", Instruments: []domain.Instrument{}},
	}
	for _, cat := range b.orderFor(arrival) {
		instruments := byCategory[cat.ID]
		if len(instruments) == 0 {
			continue
		}
		views.Categories = append(views.Categories, domain.CategoryView{
			ID:          cat.ID.String(),
			Label:       cat.Label,
			Instruments: instruments,
		})
		views.All.Instruments = append(views.All.Instruments, instruments...)
	}
	for _, instr := range views.All.Instruments {
		if favorites.Contains(instr.Symbol) {
			views.Favourites.Instruments = append(views.Favourites.Instruments, instr)
		}
	}
	return views
}

func (b *Builder) instrument(symbol string, category domain.Category, closed bool) domain.Instrument {
	label := b.labels.Label(symbol, category)
	status := domain.StatusOpen
	if closed {
		status = domain.StatusClosed
	}
	return domain.Instrument{
		Symbol:      symbol,
		DisplayName: label.DisplayName,
		ShortName:   label.ShortName,
		Category:    category,
		Kind:        label.Kind,
		IsOneSecond: label.IsOneSecond,
		Status:      status,
	}
}

// orderFor returns the configured order followed by unknown categories in arrival order.
func (b *Builder) orderFor(arrival []domain.Category) []CategoryConfig {
	out := make([]CategoryConfig, 0, len(b.order)+len(arrival))
	known := make(map[domain.Category]bool, len(b.order))
	for _, c := range b.order {
		known[c.ID] = true
		out = append(out, c)
	}
	for _, id := range arrival {
		if !known[id] {
			known[id] = true
			out = append(out, CategoryConfig{ID: id, Label: categoryTitle(id)})
		}
	}
	return out
}

// categoryTitle turns "stock_indices" into "Stock Indices".
func categoryTitle(id domain.Category) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id.String(), "_", " "))
}
