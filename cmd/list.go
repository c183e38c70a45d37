package cmd

import (
	"context"
	"flag"

	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the holdings and their total value" }
func (*listCmd) Usage() string {
	return `coinfolio list

  Displays every holding with its value at the catalog price, followed by
  the number of holdings and their total value.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, closeStore, err := OpenStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	printMarkdown(renderer.RenderHolding(renderer.NewHolding(s.Valuation())))
	return subcommands.ExitSuccess
}
