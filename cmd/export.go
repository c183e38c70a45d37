package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the holdings as CSV" }
func (*exportCmd) Usage() string {
	return `coinfolio export [-o <file>]

  Writes the holdings, their price and value as CSV, to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file, stdout if empty")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, closeStore, err := OpenStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	if c.output == "" {
		if err := coinfolio.ExportCSV(stdout, s.Valuation()); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	out, err := os.Create(c.output)
	if err != nil {
		return fail(err)
	}
	if err := coinfolio.ExportCSV(out, s.Valuation()); err != nil {
		out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stderr, "Exported %d holdings to %s\n", s.Len(), c.output)
	return subcommands.ExitSuccess
}
