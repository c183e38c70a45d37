package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add holdings from a CSV file" }
func (*importCmd) Usage() string {
	return `coinfolio import <file>

  Adds every row of a CSV file, as if entered with 'add'. The header names
  the columns: symbol, amount, ownerFirstName, ownerLastName and note. Other
  columns, like those written by 'export', are ignored. Use '-' to read
  stdin. Invalid rows are reported and skipped.
`
}

func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one file is required")
		return subcommands.ExitUsageError
	}

	var in io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		in = file
	}
	forms, err := coinfolio.ImportCSV(in)
	if err != nil {
		return fail(err)
	}

	s, closeStore, err := OpenStore(ctx)
	if err != nil {
		return fail(err)
	}
	defer closeStore()

	var rejected int
	for i, form := range forms {
		err := form.Submit(ctx, s)
		switch {
		case errors.Is(err, coinfolio.ErrInvalidInput):
			// the header is line 1
			fmt.Fprintf(stderr, "Warning: line %d skipped: %v\n", i+2, err)
			rejected++
		case err != nil:
			return fail(err)
		}
	}
	fmt.Fprintf(stdout, "Imported %d of %d rows.\n", len(forms)-rejected, len(forms))
	if rejected > 0 {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
