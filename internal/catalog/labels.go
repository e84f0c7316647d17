package catalog

import (
	"strings"

	"trade_console/internal/domain"
)

// LabelRule derives display labels for the symbols it matches.
// A rule matches by exact Symbol, by Pair (six letters after Prefix), or by
// Prefix/Suffix around a run of digits. Templates may use {n}, {base} and {quote}.
type LabelRule struct {
	Category  domain.Category `yaml:"category"` // empty matches any category
	Symbol    string          `yaml:"symbol"`
	Prefix    string          `yaml:"prefix"`
	Suffix    string          `yaml:"suffix"`
	Pair      bool            `yaml:"pair"`
	Display   string          `yaml:"display"`
	Short     string          `yaml:"short"`
	Kind      string          `yaml:"kind"`
	OneSecond bool            `yaml:"one_second"`
}

// Label is the display metadata derived for one symbol.
type Label struct {
	DisplayName string
	ShortName   string
	Kind        string
	IsOneSecond bool
}

// DefaultLabelRules covers the symbols the console ships with. Order matters:
// the first matching rule wins.
var DefaultLabelRules = []LabelRule{
	{Category: domain.CategorySynthetic, Prefix: "1HZ", Suffix: "V", Display: "Volatility {n} (1s) Index", Short: "{n}", Kind: "volatility", OneSecond: true},
	{Category: domain.CategorySynthetic, Prefix: "R_", Display: "Volatility {n} Index", Short: "{n}", Kind: "volatility"},
	{Category: domain.CategorySynthetic, Prefix: "BOOM", Display: "Boom {n} Index", Short: "{n}", Kind: "boom"},
	{Category: domain.CategorySynthetic, Prefix: "CRASH", Display: "Crash {n} Index", Short: "{n}", Kind: "crash"},
	{Category: domain.CategorySynthetic, Prefix: "JD", Display: "Jump {n} Index", Short: "{n}", Kind: "jump"},
	{Category: domain.CategorySynthetic, Symbol: "stpRNG", Display: "Step Index", Short: "Step", Kind: "step"},
	{Category: domain.CategoryCommodities, Symbol: "XAUUSD", Display: "Gold/USD", Short: "XAU/USD", Kind: "metal"},
	{Category: domain.CategoryCommodities, Symbol: "XAGUSD", Display: "Silver/USD", Short: "XAG/USD", Kind: "metal"},
	{Category: domain.CategoryForex, Prefix: "frx", Pair: true, Display: "{base}/{quote}", Short: "{base}/{quote}", Kind: "pair"},
	{Category: domain.CategoryForex, Pair: true, Display: "{base}/{quote}", Short: "{base}/{quote}", Kind: "pair"},
	{Category: domain.CategoryCryptocurrency, Prefix: "cry", Pair: true, Display: "{base}/{quote}", Short: "{base}/{quote}", Kind: "crypto"},
}

// Labeler applies a rule table. It is pure and falls back to the raw symbol.
type Labeler struct {
	rules []LabelRule
}

// NewLabeler creates a labeler. A nil table means DefaultLabelRules.
func NewLabeler(rules []LabelRule) *Labeler {
	if rules == nil {
		rules = DefaultLabelRules
	}
	return &Labeler{rules: rules}
}

// Label returns the display metadata for a symbol.
func (l *Labeler) Label(symbol string, category domain.Category) Label {
	for _, rule := range l.rules {
		if rule.Category != "" && rule.Category != category {
			continue
		}
		vars, ok := rule.match(symbol)
		if !ok {
			continue
		}
		return Label{
			DisplayName: expand(rule.Display, vars, symbol),
			ShortName:   expand(rule.Short, vars, symbol),
			Kind:        rule.Kind,
			IsOneSecond: rule.OneSecond,
		}
	}
	return Label{DisplayName: symbol, ShortName: symbol}
}

func (r LabelRule) match(symbol string) (map[string]string, bool) {
	if r.Symbol != "" {
		return nil, symbol == r.Symbol
	}
	if !strings.HasPrefix(symbol, r.Prefix) || !strings.HasSuffix(symbol, r.Suffix) {
		return nil, false
	}
	if len(symbol) < len(r.Prefix)+len(r.Suffix) {
		return nil, false
	}
	middle := symbol[len(r.Prefix) : len(symbol)-len(r.Suffix)]

	if r.Pair {
		if len(middle) != 6 || !allUpper(middle) {
			return nil, false
		}
		return map[string]string{"base": middle[:3], "quote": middle[3:]}, true
	}
	if middle == "" || !allDigits(middle) {
		return nil, false
	}
	return map[string]string{"n": middle}, true
}

// expand fills a template; an empty template yields the raw symbol.
func expand(template string, vars map[string]string, symbol string) string {
	if template == "" {
		return symbol
	}
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
