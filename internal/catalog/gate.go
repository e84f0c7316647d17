package catalog

import "trade_console/internal/domain"

// Rejection is the reason a selection was refused.
type Rejection string

const RejectClosedMarket Rejection = "closed_market"

// Selection is the outcome of TrySelect.
type Selection struct {
	Instrument domain.Instrument
	Accepted   bool
	Reason     Rejection
}

// Gate decides whether an instrument may become the active one.
type Gate struct{}

// TrySelect rejects closed instruments. It has no side effects.
func (Gate) TrySelect(instr domain.Instrument) Selection {
	if !instr.IsOpen() {
		return Selection{Instrument: instr, Reason: RejectClosedMarket}
	}
	return Selection{Instrument: instr, Accepted: true}
}
