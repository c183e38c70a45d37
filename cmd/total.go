package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type totalCmd struct {
	plain bool
}

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "display the number of holdings and their total value" }
func (*totalCmd) Usage() string {
	return `coinfolio total [-plain]

  Displays the number of holdings and their total value. With -plain only
  the total value is printed, as a bare number.
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print only the total value, as a number")
}

func (c *totalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, closeStore, err := OpenStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	v := s.Valuation()
	if c.plain {
		fmt.Fprintln(stdout, v.Total.Fixed())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTotals(renderer.NewHolding(v)))
	return subcommands.ExitSuccess
}
