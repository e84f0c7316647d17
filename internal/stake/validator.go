package stake

import (
	"fmt"

	"trade_console/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// EmptyMessage is shown whenever no amount has been entered.
const EmptyMessage = "Please enter an amount"

// defaultScale is used for settlement currencies outside ISO 4217 (e.g. USDT).
const defaultScale = 2

// Limits are the stake bounds for the active settlement currency.
type Limits struct {
	MinStake  decimal.Decimal
	MaxPayout decimal.Decimal
}

// Validate checks a canonical stake against the bounds.
// The empty check is unconditional and runs before parsing.
func Validate(canonical string, minStake, maxPayout decimal.Decimal, currencyCode string) domain.Verdict {
	if canonical == "" || canonical == "0" {
		return domain.Verdict{IsError: true, Kind: domain.ErrorKindEmpty, Message: EmptyMessage}
	}

	amount, err := parseAmount(canonical)
	if err != nil {
		return domain.Verdict{
			IsError: true,
			Kind:    domain.ErrorKindNonNumeric,
			Message: "Please enter a valid amount",
		}
	}

	if amount.LessThan(minStake) {
		return domain.Verdict{
			IsError: true,
			Kind:    domain.ErrorKindBelowMinimum,
			Message: fmt.Sprintf("Minimum stake is %s", FormatAmount(minStake, currencyCode)),
		}
	}
	if amount.GreaterThan(maxPayout) {
		return domain.Verdict{
			IsError: true,
			Kind:    domain.ErrorKindAboveMaximum,
			Message: fmt.Sprintf("Maximum payout is %s", FormatAmount(maxPayout, currencyCode)),
		}
	}
	return domain.OK
}

// Validate checks a canonical stake against these limits.
func (l Limits) Validate(canonical, currencyCode string) domain.Verdict {
	return Validate(canonical, l.MinStake, l.MaxPayout, currencyCode)
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with the currency's standard number of decimals,
// followed by the currency code. Amounts finer than the currency's minor unit
// keep their own precision so a bound is never shown rounded.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	scale := defaultScale
	if unit, err := currency.ParseISO(currencyCode); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	if p := exactScale(amount); p > scale {
		scale = p
	}
	formatted := printer.Sprintf("%v", number.Decimal(amount.Round(int32(scale)).InexactFloat64(), number.Scale(scale)))
	if currencyCode == "" {
		return formatted
	}
	return formatted + " " + currencyCode
}

// exactScale is the fewest decimals that represent amount without loss.
func exactScale(amount decimal.Decimal) int {
	p := int(-amount.Exponent())
	for p > 0 && amount.Round(int32(p-1)).Equal(amount) {
		p--
	}
	if p < 0 {
		return 0
	}
	return p
}
