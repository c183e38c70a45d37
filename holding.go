package coinfolio

import (
	"encoding/json"
	"strings"

	"github.com/etnz/coinfolio/date"
)

// Holding is the cumulative amount held for one asset symbol, with the
// metadata of the latest contribution.
type Holding struct {
	Symbol         string
	Amount         Quantity
	Note           string
	Date           date.Date // day of the latest contribution
	OwnerFirstName string
	OwnerLastName  string
}

// Owner returns "First Last".
func (h Holding) Owner() string {
	return strings.TrimSpace(h.OwnerFirstName + " " + h.OwnerLastName)
}

// MarshalJSON writes the holding with its fields in a stable order.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Append("amount", h.Amount)
	w.Append("note", h.Note)
	w.Append("date", h.Date)
	w.Append("ownerFirstName", h.OwnerFirstName)
	w.Append("ownerLastName", h.OwnerLastName)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a holding. The field names of the first version of the
// tracker ("coin", "name", "surname") are accepted when the current ones are absent.
func (h *Holding) UnmarshalJSON(b []byte) error {
	var v struct {
		Symbol         string    `json:"symbol"`
		Amount         Quantity  `json:"amount"`
		Note           string    `json:"note"`
		Date           date.Date `json:"date"`
		OwnerFirstName string    `json:"ownerFirstName"`
		OwnerLastName  string    `json:"ownerLastName"`

		Coin    string `json:"coin"`
		Name    string `json:"name"`
		Surname string `json:"surname"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*h = Holding{
		Symbol:         firstNonEmpty(v.Symbol, v.Coin),
		Amount:         v.Amount,
		Note:           v.Note,
		Date:           v.Date,
		OwnerFirstName: firstNonEmpty(v.OwnerFirstName, v.Name),
		OwnerLastName:  firstNonEmpty(v.OwnerLastName, v.Surname),
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// merge returns h updated with a new contribution: amounts are summed, the
// contribution metadata replaces the previous one.
func (h Holding) merge(c Holding) Holding {
	h.Amount = h.Amount.Add(c.Amount)
	h.Note = c.Note
	h.Date = c.Date
	h.OwnerFirstName = c.OwnerFirstName
	h.OwnerLastName = c.OwnerLastName
	return h
}
