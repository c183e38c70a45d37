package renderer

import (
	"strings"

	"github.com/etnz/coinfolio"
)

// Holding is the view of a valuation, every value already formatted.
type Holding struct {
	Currency string        `json:"currency"`
	Lines    []HoldingLine `json:"lines"`
	Count    int           `json:"count"`
	Total    string        `json:"total"`
}

// HoldingLine is one row of the holdings table.
type HoldingLine struct {
	Symbol string `json:"symbol"`
	Units  string `json:"units"`
	Value  string `json:"value"`
	Date   string `json:"date"`
	Owner  string `json:"owner"`
	Note   string `json:"note,omitempty"`
}

// NewHolding prepares a valuation for rendering.
func NewHolding(v coinfolio.Valuation) *Holding {
	h := &Holding{
		Currency: v.Currency,
		Lines:    make([]HoldingLine, 0, len(v.Lines)),
		Count:    v.Count,
		Total:    v.Total.String(),
	}
	for _, l := range v.Lines {
		h.Lines = append(h.Lines, HoldingLine{
			Symbol: l.Symbol,
			Units:  l.Amount.String(),
			Value:  l.Value.String(),
			Date:   l.Date.String(),
			Owner:  cell(l.Owner()),
			Note:   cell(l.Note),
		})
	}
	return h
}

// Prices is the view of a price catalog.
type Prices struct {
	Currency string  `json:"currency"`
	Prices   []Price `json:"prices"`
}

// Price is one row of the price table.
type Price struct {
	Symbol string `json:"symbol"`
	Unit   string `json:"unit"`
}

// NewPrices prepares a catalog for rendering, in catalog order.
func NewPrices(c *coinfolio.Catalog) *Prices {
	p := &Prices{Currency: c.Currency()}
	for _, symbol := range c.Symbols() {
		unit, _ := c.Price(symbol)
		p.Prices = append(p.Prices, Price{Symbol: symbol, Unit: unit.String()})
	}
	return p
}

// cell makes free text safe for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
