package domain

// Category identifies a market grouping as reported by the catalog source.
type Category string

const (
	CategorySynthetic      Category = "synthetic_index"
	CategoryForex          Category = "forex"
	CategoryCommodities    Category = "commodities"
	CategoryStockIndices   Category = "stock_indices"
	CategoryCryptocurrency Category = "cryptocurrency"
)

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Status is the tradability of an instrument.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Instrument is a single tradable symbol with its display metadata.
// Immutable once built; Status may differ between catalog refreshes.
type Instrument struct {
	Symbol      string   `json:"symbol"`
	DisplayName string   `json:"displayName"`
	ShortName   string   `json:"shortName"`
	Category    Category `json:"market_name"`
	Kind        string   `json:"type,omitempty"` // "volatility", "boom", "pair", ...
	IsOneSecond bool     `json:"isOneSecond"`
	Status      Status   `json:"status"`
}

// IsOpen reports whether the instrument can be traded right now.
func (i Instrument) IsOpen() bool {
	return i.Status != StatusClosed
}

// MarketGroup is one category of symbols as delivered by the catalog source.
type MarketGroup struct {
	MarketName  Category `json:"market_name" yaml:"market_name"`
	Instruments []string `json:"instruments" yaml:"instruments"`
	Closed      []string `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// CategoryView is a display-ready, ordered list of instruments.
type CategoryView struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Instruments []Instrument `json:"instruments"`
}

// Len returns the number of instruments in the view.
func (v CategoryView) Len() int {
	return len(v.Instruments)
}

// Symbols returns the instrument symbols in view order.
func (v CategoryView) Symbols() []string {
	out := make([]string, len(v.Instruments))
	for i, instr := range v.Instruments {
		out[i] = instr.Symbol
	}
	return out
}

// Find returns the instrument with the given symbol.
func (v CategoryView) Find(symbol string) (Instrument, bool) {
	for _, instr := range v.Instruments {
		if instr.Symbol == symbol {
			return instr, true
		}
	}
	return Instrument{}, false
}

// CatalogSnapshot is what the catalog source reports at a point in time.
// Groups must be ignored while Loading or when Err is set.
type CatalogSnapshot struct {
	Groups  []MarketGroup
	Loading bool
	Err     error
}
