// Command coinfolio tracks crypto holdings and their value.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/coinfolio/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("coinfolio")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.IsBuiltin(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
