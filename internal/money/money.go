// Monetary amounts are stored as integer cents. Decimals only appear at the
// boundary (price input, JSON output), converted exactly, so the same cart
// always produces the same order totals.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ahinestrog/bookorders/internal/apperr"
)

type Money struct {
	Cents int64
}

func FromCents(c int64) Money { return Money{Cents: c} }

func (m Money) Add(o Money) Money   { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Mul(qty int32) Money { return Money{Cents: m.Cents * int64(qty)} }

func (m Money) Decimal() decimal.Decimal { return decimal.New(m.Cents, -2) }

func (m Money) String() string { return m.Decimal().StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*m = p
	return nil
}

// Parse accepts a non-negative decimal string with at most two fraction
// digits ("10", "5.5", "5.50").
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, apperr.Wrap(apperr.InvalidInput, fmt.Sprintf("malformed amount %q", s), err)
	}
	if d.IsNegative() {
		return Money{}, apperr.E(apperr.InvalidInput, fmt.Sprintf("negative amount %q", s))
	}
	if d.Exponent() < -2 {
		return Money{}, apperr.E(apperr.InvalidInput, fmt.Sprintf("amount %q has sub-cent precision", s))
	}
	return Money{Cents: d.Shift(2).IntPart()}, nil
}
