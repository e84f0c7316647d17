package stake

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultStep is used when no positive step is configured.
var DefaultStep = decimal.NewFromInt(1)

// Stepper computes increment/decrement targets from a canonical stake.
// It does not enforce bounds; results must be validated before commit.
type Stepper struct {
	step decimal.Decimal
}

// NewStepper creates a stepper. Non-positive steps fall back to DefaultStep.
func NewStepper(step decimal.Decimal) *Stepper {
	if !step.IsPositive() {
		step = DefaultStep
	}
	return &Stepper{step: step}
}

// Step returns the configured step.
func (s *Stepper) Step() decimal.Decimal {
	return s.step
}

// Increment adds one step to the canonical stake.
func (s *Stepper) Increment(canonical string) string {
	return toCanonical(baseline(canonical).Add(s.step))
}

// Decrement subtracts one step, flooring at zero.
func (s *Stepper) Decrement(canonical string) string {
	next := baseline(canonical).Sub(s.step)
	if next.IsNegative() {
		next = decimal.Zero
	}
	return toCanonical(next)
}

// baseline treats empty, zero and unparseable amounts as 0.
func baseline(canonical string) decimal.Decimal {
	amount, err := parseAmount(canonical)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func toCanonical(amount decimal.Decimal) string {
	return Normalize("", amount.String(), "")
}

// parseAmount parses a canonical stake. A trailing point ("5.") reads as "5".
func parseAmount(canonical string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSuffix(canonical, "."))
}
