package store

// TradeStore is the trade configuration the console edits: stake, symbol
// and instrument.
type TradeStore struct {
	stake      *Value[string]
	symbol     *Value[string]
	instrument *Value[string]
}

// NewTradeStore creates a store with an initial stake and no instrument.
func NewTradeStore(stake string) *TradeStore {
	return &TradeStore{
		stake:      NewValue(stake),
		symbol:     NewValue(""),
		instrument: NewValue(""),
	}
}

func (s *TradeStore) Stake() string { return s.stake.Get() }
func (s *TradeStore) SetStake(stake string) { s.stake.Set(stake) }
func (s *TradeStore) Symbol() string { return s.symbol.Get() }
func (s *TradeStore) SetSymbol(symbol string) { s.symbol.Set(symbol) }
func (s *TradeStore) Instrument() string { return s.instrument.Get() }
func (s *TradeStore) SetInstrument(symbol string) {
	s.instrument.Set(symbol)
}

// OnStake subscribes to stake changes.
func (s *TradeStore) OnStake(fn func(string)) func() {
	return s.stake.Subscribe(fn)
}

