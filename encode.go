package coinfolio

import (
	"encoding/json"
	"fmt"
	"io"
)

// EncodeHoldings writes holdings as a single JSON array.
//
// Each holding is an object with "symbol", "amount" (a number), "note",
// "date" (YYYY-MM-DD), "ownerFirstName" and "ownerLastName". An empty list
// is written as [].
func EncodeHoldings(w io.Writer, holdings []Holding) error {
	if holdings == nil {
		holdings = []Holding{}
	}
	if err := json.NewEncoder(w).Encode(holdings); err != nil {
		return fmt.Errorf("cannot encode holdings: %w", err)
	}
	return nil
}

// DecodeHoldings reads a JSON array written by EncodeHoldings.
//
// Holdings without a symbol or with a non positive amount make the whole
// value invalid. Duplicated symbols are returned as is, see Store for how they are merged.
func DecodeHoldings(r io.Reader) ([]Holding, error) {
	var holdings []Holding
	dec := json.NewDecoder(r)
	if err := dec.Decode(&holdings); err != nil {
		return nil, fmt.Errorf("cannot decode holdings: %w", err)
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, fmt.Errorf("cannot decode holdings: unexpected data after the array")
	}
	for i, h := range holdings {
		if normalizeSymbol(h.Symbol) == "" {
			return nil, fmt.Errorf("holding %d has no symbol", i)
		}
		if !h.Amount.IsPositive() {
			return nil, fmt.Errorf("holding %d (%s) has invalid amount %v", i, h.Symbol, h.Amount)
		}
	}
	return holdings, nil
}
