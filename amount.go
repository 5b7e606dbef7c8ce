package tradepnl

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an exact decimal value that also remembers whether its source
// column was present at all. A missing column is not the same thing as a
// zero value: legacy exports omit whole columns, and the engines must be
// able to tell "fee was zero" apart from "fee was never recorded".
//
// The zero value of Amount is the absent amount. The precision is a
// property of the underlying decimal value, there is no process-wide
// numeric context.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// A creates a present Amount from a raw numeric value.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value), valid: true}
}

// Absent returns the explicit "column not present" marker.
func Absent() Amount { return Amount{} }

// ParseAmount parses a monetary cell into a present Amount. The input may
// carry thousands separators ("1,234.5"). Empty cells and unparseable text
// coerce to zero rather than failing: a single bad number must never abort
// a whole batch.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return A(0)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return A(0)
	}
	return Amount{value: d, valid: true}
}

// Present reports whether the source column existed.
func (a Amount) Present() bool { return a.valid }

// Decimal returns the underlying decimal value; zero when absent.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) IsZero() bool     { return a.value.IsZero() }
func (a Amount) IsPositive() bool { return a.value.IsPositive() }
func (a Amount) IsNegative() bool { return a.value.IsNegative() }

func (a Amount) Equal(b Amount) bool           { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool        { return a.value.LessThan(b.value) }
func (a Amount) LessThanOrEqual(b Amount) bool { return a.value.LessThanOrEqual(b.value) }
func (a Amount) GreaterThan(b Amount) bool     { return a.value.GreaterThan(b.value) }

// Arithmetic treats absent operands as zero and always yields a present
// result.

func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value), valid: true} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value), valid: true} }
func (a Amount) Mul(b Amount) Amount { return Amount{value: a.value.Mul(b.value), valid: true} }
func (a Amount) Neg() Amount         { return Amount{value: a.value.Neg(), valid: true} }
func (a Amount) Abs() Amount         { return Amount{value: a.value.Abs(), valid: true} }

// Div divides a by b. A zero divisor yields zero: every ratio in the
// allocation rules is defined to be zero when its denominator is zero.
func (a Amount) Div(b Amount) Amount {
	if b.value.IsZero() {
		return A(0)
	}
	return Amount{value: a.value.Div(b.value), valid: true}
}

// Min returns the smaller of a and b.
func (a Amount) Min(b Amount) Amount {
	if a.value.LessThan(b.value) {
		return a
	}
	return b
}

func (a Amount) String() string {
	if !a.valid {
		return "-"
	}
	return a.value.String()
}

// MarshalJSON renders the amount as a bare JSON number, or null when the
// column was absent.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Amount{}
		return nil
	}
	if err := a.value.UnmarshalJSON(b); err != nil {
		return err
	}
	a.valid = true
	return nil
}
