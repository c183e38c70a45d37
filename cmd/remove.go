package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove whole holdings" }
func (*removeCmd) Usage() string {
	return `coinfolio remove <symbol>...

  Removes the holdings of the given symbols. There is no partial removal,
  the whole amount is deleted. Symbols not held are reported and skipped.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}

	s, closeStore, err := OpenStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	for _, symbol := range f.Args() {
		removed, err := s.Remove(ctx, symbol)
		if err != nil {
			return fail(err)
		}
		if !removed {
			fmt.Fprintf(stderr, "Warning: no holding for %q\n", symbol)
			continue
		}
		fmt.Fprintf(stdout, "Removed %s.\n", symbol)
	}
	fmt.Fprintln(stdout)
	printMarkdown(renderer.RenderTotals(renderer.NewHolding(s.Valuation())))
	return subcommands.ExitSuccess
}
