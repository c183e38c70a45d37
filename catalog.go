package coinfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ErrUnknownSymbol is returned when a symbol is not listed in the Catalog.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Price is one entry in a Catalog: the unit price of an asset symbol.
type Price struct {
	Symbol string
	Unit   decimal.Decimal
}

// Catalog is the immutable list of assets that can be held, with their unit price.
type Catalog struct {
	currency string
	symbols  []string // declaration order
	prices   map[string]decimal.Decimal
}

// DefaultCatalog returns the built-in catalog: BTC, ETH and ADA quoted in USD.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultCurrency,
		Price{"BTC", decimal.NewFromInt(30000)},
		Price{"ETH", decimal.NewFromInt(2000)},
		Price{"ADA", decimal.RequireFromString("0.5")},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog returns a catalog of prices in currency.
//
// Symbols are upper-cased. Empty and duplicated symbols, and non positive prices are rejected.
func NewCatalog(currency string, prices ...Price) (*Catalog, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	c := &Catalog{
		currency: strings.ToUpper(currency),
		prices:   make(map[string]decimal.Decimal, len(prices)),
	}
	for _, p := range prices {
		symbol := normalizeSymbol(p.Symbol)
		if symbol == "" {
			return nil, fmt.Errorf("catalog entry with empty symbol")
		}
		if _, exists := c.prices[symbol]; exists {
			return nil, fmt.Errorf("duplicated catalog symbol %q", symbol)
		}
		if !p.Unit.IsPositive() {
			return nil, fmt.Errorf("invalid price %v for %q: must be positive", p.Unit, symbol)
		}
		c.symbols = append(c.symbols, symbol)
		c.prices[symbol] = p.Unit
	}
	if len(c.symbols) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	return c, nil
}

// Currency returns the currency prices are quoted in.
func (c *Catalog) Currency() string { return c.currency }

// Symbols returns the catalog symbols in declaration order.
func (c *Catalog) Symbols() []string { return slices.Clone(c.symbols) }

// Has reports whether symbol is listed.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.prices[normalizeSymbol(symbol)]
	return ok
}

// Price returns the unit price of symbol.
func (c *Catalog) Price(symbol string) (Money, bool) {
	p, ok := c.prices[normalizeSymbol(symbol)]
	if !ok {
		return Money{}, false
	}
	return M(p, c.currency), true
}

// Zero returns zero in the catalog currency.
func (c *Catalog) Zero() Money { return M(0, c.currency) }

func normalizeSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// DecodeCatalog reads a catalog from a JSON document.
//
// selector is a JSONPath expression ("$" when empty) locating the prices in the
// document. It must resolve to either an object mapping symbols to prices:
//
//	{"BTC": 30000, "ETH": 2000}
//
// or an array of objects with "symbol" and "price" properties. Symbols decoded
// from an object are sorted alphabetically, arrays keep their order.
func DecodeCatalog(r io.Reader, currency, selector string) (*Catalog, error) {
	if selector == "" {
		selector = "$"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse catalog document: %w", err)
	}

	jval, err := jsonpath.Get(selector, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate catalog selector %q: %w", selector, err)
	}
	// a selector using wildcards or filters always returns a list, a single object (the price map) is unwrapped.
	if list, ok := jval.([]any); ok && len(list) == 1 {
		if m, ok := list[0].(map[string]any); ok && !isPriceObject(m) {
			jval = m
		}
	}

	var prices []Price
	switch v := jval.(type) {
	case map[string]any:
		symbols := make([]string, 0, len(v))
		for s := range v {
			symbols = append(symbols, s)
		}
		slices.Sort(symbols)
		for _, s := range symbols {
			unit, err := toDecimal(v[s])
			if err != nil {
				return nil, fmt.Errorf("invalid price for %q: %w", s, err)
			}
			prices = append(prices, Price{Symbol: s, Unit: unit})
		}
	case []any:
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok || !isPriceObject(m) {
				return nil, fmt.Errorf("catalog item %d: want an object with \"symbol\" and \"price\"", i)
			}
			symbol, _ := m["symbol"].(string)
			unit, err := toDecimal(m["price"])
			if err != nil {
				return nil, fmt.Errorf("invalid price for %q: %w", symbol, err)
			}
			prices = append(prices, Price{Symbol: symbol, Unit: unit})
		}
	default:
		return nil, fmt.Errorf("catalog selector %q must select an object or an array, got %T", selector, jval)
	}
	return NewCatalog(currency, prices...)
}

func isPriceObject(m map[string]any) bool {
	_, hasSymbol := m["symbol"].(string)
	_, hasPrice := m["price"]
	return hasSymbol && hasPrice
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %v", v)
	}
}
