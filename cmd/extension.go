package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/coinfolio/config"
	"github.com/google/subcommands"
)

// ExtensionPrefix prefixes the name of external subcommand binaries.
const ExtensionPrefix = "coinfolio-"

// IsBuiltin reports whether name is a subcommand registered in c.
func IsBuiltin(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// RunExtension attempts to find and execute an external coinfolio-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The resolved storage and catalog settings are passed down as environment variables so
// the extension opens the same portfolio.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return true, int(subcommands.ExitUsageError)
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		config.EnvBackend+"="+cfg.Backend,
		config.EnvPath+"="+cfg.Path,
		config.EnvKey+"="+cfg.Key,
		config.EnvPrices+"="+cfg.PricesFile,
		config.EnvPricesPath+"="+cfg.PricesPath,
		config.EnvCurrency+"="+cfg.Currency,
		config.EnvLogLevel+"="+cfg.LogLevel,
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", lp, err)
		return true, int(subcommands.ExitFailure)
	}
	return true, int(subcommands.ExitSuccess)
}
