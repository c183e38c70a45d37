package cmd

import (
	"context"
	"flag"

	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "display the price catalog" }
func (*pricesCmd) Usage() string {
	return `coinfolio prices

  Displays the symbols that can be recorded and their unit price.
`
}

func (*pricesCmd) SetFlags(f *flag.FlagSet) {}

func (*pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return fail(err)
	}
	c, err := LoadCatalog(cfg)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderPrices(renderer.NewPrices(c)))
	return subcommands.ExitSuccess
}
