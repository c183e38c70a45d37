package coinfolio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/coinfolio/date"
	"github.com/etnz/coinfolio/slot"
	"github.com/rs/zerolog"
)

// DefaultKey is the slot key the portfolio is stored under.
const DefaultKey = "cryptoPortfolio"

// Store is the list of holdings, at most one per symbol, written through to
// a slot after every change.
//
// A Store is meant to be owned by a single session and is not safe for concurrent use.
type Store struct {
	slot    slot.Slot
	key     string
	catalog *Catalog
	today   date.Clock
	log     zerolog.Logger

	holdings []Holding     // insertion order
	index    map[string]int // symbol -> position in holdings
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the slot key, DefaultKey by default.
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

// WithClock sets the clock used to date contributions, date.Today by default.
func WithClock(c date.Clock) Option { return func(s *Store) { s.today = c } }

// WithLogger sets the logger, disabled by default.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// Open restores the store persisted in sl.
//
// A missing or unreadable value yields an empty store: it will be replaced on
// the first change. Only slot read failures are reported.
func Open(ctx context.Context, sl slot.Slot, c *Catalog, opts ...Option) (*Store, error) {
	s := &Store{
		slot:    sl,
		key:     DefaultKey,
		catalog: c,
		today:   date.Today,
		log:     zerolog.Nop(),
		index:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := sl.Get(ctx, s.key)
	switch {
	case errors.Is(err, slot.ErrNotFound):
		s.log.Debug().Str("key", s.key).Msg("no persisted portfolio, starting empty")
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("cannot read portfolio %q: %w", s.key, err)
	case len(bytes.TrimSpace(data)) == 0:
		return s, nil
	}

	holdings, err := DecodeHoldings(bytes.NewReader(data))
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("persisted portfolio is unreadable, starting empty")
		return s, nil
	}
	for _, h := range holdings {
		h.Symbol = normalizeSymbol(h.Symbol)
		if !c.Has(h.Symbol) {
			s.log.Warn().Str("symbol", h.Symbol).Msg("holding symbol is not in the price catalog, it is valued at zero")
		}
		if i, exists := s.index[h.Symbol]; exists {
			s.holdings[i] = s.holdings[i].merge(h)
			continue
		}
		s.index[h.Symbol] = len(s.holdings)
		s.holdings = append(s.holdings, h)
	}
	s.log.Debug().Str("key", s.key).Int("holdings", len(s.holdings)).Msg("portfolio restored")
	return s, nil
}

// Catalog returns the price catalog the store validates symbols with.
func (s *Store) Catalog() *Catalog { return s.catalog }

// Add records a contribution.
//
// The entry is validated first, a *ValidationError leaves the store unchanged.
// A new symbol appends a holding dated today. A known symbol gets the amount
// added, and its note, date and owner replaced by the entry's.
//
// If the write-through fails the change is undone and the error returned.
func (s *Store) Add(ctx context.Context, e Entry) error {
	if err := e.Validate(s.catalog); err != nil {
		return err
	}
	contribution := Holding{
		Symbol:         normalizeSymbol(e.Symbol),
		Amount:         e.Amount,
		Note:           e.Note,
		Date:           s.today(),
		OwnerFirstName: strings.TrimSpace(e.FirstName),
		OwnerLastName:  strings.TrimSpace(e.LastName),
	}

	if i, exists := s.index[contribution.Symbol]; exists {
		previous := s.holdings[i]
		s.holdings[i] = previous.merge(contribution)
		if err := s.save(ctx); err != nil {
			s.holdings[i] = previous
			return err
		}
		s.log.Debug().Str("symbol", contribution.Symbol).Stringer("amount", s.holdings[i].Amount).Msg("holding merged")
		return nil
	}

	s.index[contribution.Symbol] = len(s.holdings)
	s.holdings = append(s.holdings, contribution)
	if err := s.save(ctx); err != nil {
		s.holdings = s.holdings[:len(s.holdings)-1]
		delete(s.index, contribution.Symbol)
		return err
	}
	s.log.Debug().Str("symbol", contribution.Symbol).Stringer("amount", contribution.Amount).Msg("holding added")
	return nil
}

// Remove deletes the holding for symbol. It reports whether there was one,
// removing an absent symbol changes nothing and writes nothing.
func (s *Store) Remove(ctx context.Context, symbol string) (bool, error) {
	symbol = normalizeSymbol(symbol)
	i, exists := s.index[symbol]
	if !exists {
		return false, nil
	}
	previous := slices.Clone(s.holdings)
	s.holdings = slices.Delete(s.holdings, i, i+1)
	s.reindex()
	if err := s.save(ctx); err != nil {
		s.holdings = previous
		s.reindex()
		return false, err
	}
	s.log.Debug().Str("symbol", symbol).Msg("holding removed")
	return true, nil
}

// List returns a copy of the holdings in insertion order.
func (s *Store) List() []Holding { return slices.Clone(s.holdings) }

// Holding returns the holding for symbol.
func (s *Store) Holding(symbol string) (Holding, bool) {
	i, exists := s.index[normalizeSymbol(symbol)]
	if !exists {
		return Holding{}, false
	}
	return s.holdings[i], true
}

// Len returns the number of holdings.
func (s *Store) Len() int { return len(s.holdings) }

// Valuation values the current holdings.
func (s *Store) Valuation() Valuation { return NewValuation(s.catalog, s.holdings) }

func (s *Store) reindex() {
	clear(s.index)
	for i, h := range s.holdings {
		s.index[h.Symbol] = i
	}
}

// save overwrites the slot with the full list.
func (s *Store) save(ctx context.Context) error {
	var b bytes.Buffer
	if err := EncodeHoldings(&b, s.holdings); err != nil {
		return err
	}
	if err := s.slot.Set(ctx, s.key, b.Bytes()); err != nil {
		return fmt.Errorf("cannot save portfolio %q: %w", s.key, err)
	}
	return nil
}
