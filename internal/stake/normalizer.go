// Package stake turns raw stake keystrokes into canonical amounts, steps them
// and validates them against currency-aware bounds.
package stake

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// charClass is the classification every input rune falls into.
type charClass int

const (
	classOther charClass = iota
	classDigit
	classPoint
)

func classify(r rune) charClass {
	switch {
	case r >= '0' && r <= '9':
		return classDigit
	case r == '.':
		return classPoint
	default:
		return classOther
	}
}

// Normalize turns the raw input value after an edit into a canonical stake.
// prev is the canonical value before the edit and currency the display-only suffix.
// Every input has a defined result; "" means no amount entered yet.
func Normalize(prev, raw, currency string) string {
	value, _ := normalizeEdit(prev, raw, currency)
	return value
}

// normalizeEdit reports false when the edit was rejected and prev is returned as-is.
func normalizeEdit(prev, raw, currency string) (string, bool) {
	if deletesCurrencySuffix(prev, raw, currency) {
		return prev, false
	}
	value := stripCurrencySuffix(raw, currency)
	value = keepDigitsAndPoints(value)
	value = collapseDecimalPoints(value)
	value = trimLeadingZeros(value)
	value = padLeadingPoint(value)
	return value, true
}

// deletesCurrencySuffix detects a backspace that landed inside the currency label.
func deletesCurrencySuffix(prev, raw, currency string) bool {
	if currency == "" {
		return false
	}
	return utf8.RuneCountInString(raw) < utf8.RuneCountInString(prev) && strings.HasSuffix(raw, currency)
}

func stripCurrencySuffix(raw, currency string) string {
	if currency == "" || !strings.HasSuffix(raw, currency) {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(strings.TrimRightFunc(strings.TrimSuffix(raw, currency), unicode.IsSpace))
}

func keepDigitsAndPoints(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if classify(r) != classOther {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseDecimalPoints keeps the first point and joins every digit group after it.
func collapseDecimalPoints(value string) string {
	first := strings.IndexByte(value, '.')
	if first < 0 {
		return value
	}
	return value[:first+1] + strings.ReplaceAll(value[first+1:], ".", "")
}

func trimLeadingZeros(value string) string {
	if value == "0" {
		return value
	}
	return strings.TrimLeft(value, "0")
}

func padLeadingPoint(value string) string {
	if strings.HasPrefix(value, ".") {
		return "0" + value
	}
	return value
}

// Display renders a canonical stake the way the input shows it.
func Display(canonical, currency string) string {
	if currency == "" {
		return canonical
	}
	return canonical + " " + currency
}
