package statements

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value as an exact count of minor currency
// units (cents for EUR or USD). Statement amounts must survive arithmetic
// without drift, so there is no floating point anywhere in this type.
type Money struct {
	cents int64 // minor units
	cur   string
}

// Cents returns a Money holding the given count of minor units.
func Cents(n int64, currency string) Money {
	return Money{cents: n, cur: currency}
}

// M returns a Money from a major-unit value, factorized through decimal to
// keep "64.08" exactly 6408 cents.
func M[T float32 | float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	d := newDecimal(value)
	f := fraction(currency)
	return Money{cents: d.Shift(int32(f)).Round(0).IntPart(), cur: currency}
}

// fraction returns the number of decimal places of a currency.
func fraction(code string) int {
	// the Money constructor never returns a nil currency
	return money.New(0, code).Currency().Fraction
}

// currency returns the money's full currency description.
func (m Money) currency() *money.Currency {
	return money.New(0, m.cur).Currency()
}

// String returns the formatted amount, e.g. "€64.08".
func (m Money) String() string {
	return m.currency().Formatter().Format(m.cents)
}

func (m Money) Currency() string    { return m.cur }
func (m Money) MinorUnits() int64   { return m.cents }
func (m Money) IsZero() bool        { return m.cents == 0 }
func (m Money) IsPositive() bool    { return m.cents > 0 }
func (m Money) IsNegative() bool    { return m.cents < 0 }
func (m Money) Neg() Money          { return Money{cents: -m.cents, cur: m.cur} }
func (m Money) Equal(n Money) bool  { return m.cents == n.cents && m.cur == n.cur }
func (m Money) Add(n Money) Money   { return Money{cents: m.cents + n.cents, cur: cur(m, n)} }
func (m Money) Sub(n Money) Money   { return Money{cents: m.cents - n.cents, cur: cur(m, n)} }

// Decimal returns the major-unit value, e.g. 64.08 for 6408 EUR cents.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -int32(fraction(m.cur)))
}

// Mul scales the amount by a share quantity, rounding half away from zero
// to the minor unit.
func (m Money) Mul(q Quantity) Money {
	return Money{cents: decimal.New(m.cents, 0).Mul(q.value).Round(0).IntPart(), cur: m.cur}
}

// Div divides the amount by a share quantity, rounding half away from zero
// to the minor unit.
func (m Money) Div(q Quantity) Money {
	return Money{cents: decimal.New(m.cents, 0).DivRound(q.value, 0).IntPart(), cur: m.cur}
}

// CloseTo reports whether two amounts of the same currency agree within one
// minor unit, the tolerance used for unit reconciliation.
func (m Money) CloseTo(n Money) bool {
	d := m.cents - n.cents
	if d < 0 {
		d = -d
	}
	return d <= 1 && cur(m, n) != ""
}

// cur makes the "" currency totally weak: arithmetic between two named
// currencies requires them to be the same.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic(fmt.Sprintf("currency mismatch %s != %s", a.cur, b.cur))
	}
	return a.cur
}
