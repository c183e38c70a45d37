package coinfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput matches every *ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a rejected input field. The store is left unchanged
// whenever one is returned.
type ValidationError struct {
	Field  string // "symbol", "amount", "firstName" or "lastName"
	Value  string
	Reason string
	Err    error // optional underlying cause
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
func (e *ValidationError) Unwrap() error        { return e.Err }

// Entry is a validated contribution to the portfolio.
type Entry struct {
	Symbol    string
	Amount    Quantity
	Note      string
	FirstName string
	LastName  string
}

// Validate checks e against the catalog: the symbol must be listed, the amount
// positive and both owner names non blank.
func (e Entry) Validate(c *Catalog) error {
	if !c.Has(e.Symbol) {
		return &ValidationError{Field: "symbol", Value: e.Symbol, Reason: "not in the price catalog", Err: ErrUnknownSymbol}
	}
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Value: e.Amount.String(), Reason: "must be positive"}
	}
	if strings.TrimSpace(e.FirstName) == "" {
		return &ValidationError{Field: "firstName", Value: e.FirstName, Reason: "is required"}
	}
	if strings.TrimSpace(e.LastName) == "" {
		return &ValidationError{Field: "lastName", Value: e.LastName, Reason: "is required"}
	}
	return nil
}

// Form holds the raw user input for one contribution.
//
// Symbol is picked from the catalog, the other fields are free text.
type Form struct {
	Symbol    string
	Amount    string
	Note      string
	FirstName string
	LastName  string
}

// NewForm returns an empty form with the first catalog symbol selected.
func NewForm(c *Catalog) *Form {
	return &Form{Symbol: c.symbols[0]}
}

// Typed amounts are bounded in length and exponent so that a single entry
// cannot grow the persisted value out of proportion.
const (
	maxAmountLen = 64
	maxAmountExp = 30
)

// Entry parses and validates the form.
func (f *Form) Entry(c *Catalog) (Entry, error) {
	amount, err := ParseQuantity(f.Amount)
	if err != nil {
		return Entry{}, &ValidationError{Field: "amount", Value: f.Amount, Reason: "not a number", Err: err}
	}
	if len(strings.TrimSpace(f.Amount)) > maxAmountLen || amount.value.Exponent() > maxAmountExp || amount.value.Exponent() < -maxAmountExp {
		return Entry{}, &ValidationError{Field: "amount", Value: f.Amount, Reason: "out of range"}
	}
	e := Entry{
		Symbol:    normalizeSymbol(f.Symbol),
		Amount:    amount,
		Note:      f.Note,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
	}
	if err := e.Validate(c); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Submit adds the form content to s.
//
// On success the transient fields are cleared for the next entry and the
// selected symbol is kept. On failure the form is left as is.
func (f *Form) Submit(ctx context.Context, s *Store) error {
	e, err := f.Entry(s.Catalog())
	if err != nil {
		return err
	}
	if err := s.Add(ctx, e); err != nil {
		return err
	}
	f.Reset()
	return nil
}

// Reset clears the amount, note and owner fields.
func (f *Form) Reset() {
	f.Amount, f.Note, f.FirstName, f.LastName = "", "", "", ""
}
