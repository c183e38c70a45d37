package coinfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/coinfolio/date"
	"github.com/etnz/coinfolio/slot"
)

// today is the day tests pretend to run on.
var today = date.New(2025, 7, 14)

// failingSlot is a slot whose writes fail once armed.
type failingSlot struct {
	*slot.Memory
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingSlot) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

// newTestStore opens an empty store on a memory slot with the default catalog.
func newTestStore(t *testing.T) (*Store, *slot.Memory) {
	t.Helper()
	m := slot.NewMemory()
	s, err := Open(context.Background(), m, DefaultCatalog(), WithClock(date.Fixed(today)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, m
}

func entry(symbol string, amount float64, first, last string) Entry {
	return Entry{Symbol: symbol, Amount: Q(amount), FirstName: first, LastName: last}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
