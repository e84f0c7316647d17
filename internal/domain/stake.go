package domain

// ErrorKind classifies a failed stake validation.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindEmpty
	ErrorKindBelowMinimum
	ErrorKindAboveMaximum
	ErrorKindNonNumeric
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindEmpty:
		return "empty"
	case ErrorKindBelowMinimum:
		return "below_minimum"
	case ErrorKindAboveMaximum:
		return "above_maximum"
	case ErrorKindNonNumeric:
		return "non_numeric"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of validating a canonical stake.
type Verdict struct {
	IsError bool
	Kind    ErrorKind
	Message string
}

// OK is the verdict for an acceptable stake.
var OK = Verdict{}

// Point is an on-screen coordinate used to anchor tooltips.
type Point struct {
	X float64
	Y float64
}

// Rect is the on-screen bounds of a control.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// TooltipKind selects the tooltip presentation.
type TooltipKind string

const (
	TooltipError TooltipKind = "error"
)
