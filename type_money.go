package coinfolio

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency unit prices are quoted in unless a catalog says otherwise.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns the Money for value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency symbol and grouping, rounded to the currency fraction: "$60,000.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if dec.BigInt().IsInt64() {
		return cur.Formatter().Format(dec.IntPart())
	}
	return formatLarge(cur.Formatter(), m.value)
}

// formatLarge formats values beyond the int64 minor units go-money works
// with, following the same formatter rules.
func formatLarge(f *money.Formatter, v decimal.Decimal) string {
	digits, fraction, _ := strings.Cut(v.Abs().StringFixed(int32(f.Fraction)), ".")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(f.Thousand)
		}
		b.WriteRune(r)
	}
	if f.Fraction > 0 {
		b.WriteString(f.Decimal)
		b.WriteString(fraction)
	}

	result := strings.Replace(f.Template, "1", b.String(), 1)
	result = strings.Replace(result, "$", f.Grapheme, 1)
	if v.IsNegative() {
		result = "-" + result
	}
	return result
}

// Fixed formats the value in plain digits rounded to the currency fraction: "60000.00".
func (m Money) Fixed() string {
	return m.value.StringFixed(int32(m.currency().Fraction))
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) Mul(q Quantity) Money     { return Money{value: m.value.Mul(q.value), cur: m.cur} }

// Add returns m+n. The "" currency is weak and takes the currency of the other operand.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }

func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}
