package coinfolio

// ValueOf returns amount × unit price of h.
//
// A symbol missing from the catalog is valued at zero.
func ValueOf(c *Catalog, h Holding) Money {
	price, ok := c.Price(h.Symbol)
	if !ok {
		return c.Zero()
	}
	return price.Mul(h.Amount)
}

// TotalValue returns the sum of the holdings values, zero for no holdings.
func TotalValue(c *Catalog, holdings []Holding) Money {
	total := c.Zero()
	for _, h := range holdings {
		total = total.Add(ValueOf(c, h))
	}
	return total
}

// Count returns the number of holdings, not the number of units.
func Count(holdings []Holding) int { return len(holdings) }

// Line is one valued holding.
type Line struct {
	Holding
	Price Money // unit price, zero when the symbol is not in the catalog
	Value Money
}

// Valuation is the value of a list of holdings at catalog prices.
type Valuation struct {
	Currency string
	Lines    []Line
	Count    int
	Total    Money
}

// NewValuation values holdings with the catalog prices. Lines follow the holdings order.
func NewValuation(c *Catalog, holdings []Holding) Valuation {
	v := Valuation{
		Currency: c.Currency(),
		Lines:    make([]Line, 0, len(holdings)),
		Count:    Count(holdings),
		Total:    TotalValue(c, holdings),
	}
	for _, h := range holdings {
		price, ok := c.Price(h.Symbol)
		if !ok {
			price = c.Zero()
		}
		v.Lines = append(v.Lines, Line{Holding: h, Price: price, Value: ValueOf(c, h)})
	}
	return v
}
