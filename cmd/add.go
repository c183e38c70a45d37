package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	symbol string
	amount string
	note   string
	first  string
	last   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a holding, merged with any existing one of the same symbol" }
func (*addCmd) Usage() string {
	return `coinfolio add [-s <symbol>] -a <amount> -first <name> -last <name> [-n <note>]

  Records a contribution to the portfolio. If the symbol is already held,
  the amounts are summed and the note, date and owner are replaced.
  The symbol defaults to the first one of the price catalog.

Usage Examples:
$ coinfolio add -s ETH -a 1.5 -first Ada -last Lovelace -n "cold wallet"

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol of the asset, one of the price catalog")
	f.StringVar(&c.amount, "a", "", "Amount of units, a positive number")
	f.StringVar(&c.note, "n", "", "Optional note")
	f.StringVar(&c.first, "first", "", "Owner first name")
	f.StringVar(&c.last, "last", "", "Owner last name")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}

	s, closeStore, err := OpenStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	form := coinfolio.NewForm(s.Catalog())
	if c.symbol != "" {
		form.Symbol = c.symbol
	}
	form.Amount, form.Note, form.FirstName, form.LastName = c.amount, c.note, c.first, c.last
	symbol := form.Symbol

	if err := form.Submit(ctx, s); err != nil {
		return fail(err)
	}

	h, _ := s.Holding(symbol)
	fmt.Fprintf(stdout, "Recorded %s, now holding %s %s worth %s.\n\n", c.amount, h.Amount, h.Symbol, coinfolio.ValueOf(s.Catalog(), h))
	printMarkdown(renderer.RenderTotals(renderer.NewHolding(s.Valuation())))
	return subcommands.ExitSuccess
}
