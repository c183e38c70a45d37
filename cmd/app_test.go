package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/coinfolio/config"
	"github.com/etnz/coinfolio/date"
	"github.com/google/subcommands"
)

// setFlag sets a global flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := flag.CommandLine.Lookup(name)
	old := f.Value.String()
	if err := f.Value.Set(value); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Value.Set(old) })
}

// useTempStore points the global flags to a file store in a new temporary
// directory and captures the outputs.
func useTempStore(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	for _, key := range []string{config.EnvBackend, config.EnvPath, config.EnvKey, config.EnvPrices, config.EnvPricesPath, config.EnvCurrency} {
		t.Setenv(key, "")
	}
	setFlag(t, "backend", "file")
	setFlag(t, "path", t.TempDir())
	setFlag(t, "raw", "true")
	setFlag(t, "v", "off")

	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	oldOut, oldErr, oldToday := stdout, stderr, today
	stdout, stderr, today = out, errOut, date.Fixed(date.New(2025, 7, 14))
	t.Cleanup(func() { stdout, stderr, today = oldOut, oldErr, oldToday })
	return out, errOut
}

// run executes a single coinfolio subcommand line.
func run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet("coinfolio", flag.ContinueOnError)
	commander := subcommands.NewCommander(f, "coinfolio")
	Register(commander)
	if err := f.Parse(args); err != nil {
		t.Fatal(err)
	}
	return commander.Execute(context.Background())
}

// total returns the plain total value.
func total(t *testing.T, out *bytes.Buffer) string {
	t.Helper()
	out.Reset()
	if status := run(t, "total", "-plain"); status != subcommands.ExitSuccess {
		t.Fatalf("total -plain = %v", status)
	}
	return strings.TrimSpace(out.String())
}

func TestAddAndList(t *testing.T) {
	out, _ := useTempStore(t)

	if status := run(t, "add", "-s", "ETH", "-a", "1.5", "-first", "Ada", "-last", "Lovelace", "-n", "cold wallet"); status != subcommands.ExitSuccess {
		t.Fatalf("add = %v", status)
	}
	if got := out.String(); !strings.Contains(got, "now holding 1.5 ETH worth $3,000.00") {
		t.Errorf("add output = %q", got)
	}

	out.Reset()
	if status := run(t, "list"); status != subcommands.ExitSuccess {
		t.Fatalf("list = %v", status)
	}
	for _, want := range []string{
		"| ETH | 1.5 | $3,000.00 | 2025-07-14 | Ada Lovelace | cold wallet |",
		"**Total Coins:** 1",
		"**Total Value:** $3,000.00",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list does not contain %q, got:\n%s", want, out)
		}
	}
}

func TestAddMerges(t *testing.T) {
	out, _ := useTempStore(t)
	run(t, "add", "-s", "ETH", "-a", "1.5", "-first", "Ada", "-last", "Lovelace")
	run(t, "add", "-s", "eth", "-a", "0.5", "-first", "Alan", "-last", "Turing")

	if got, want := total(t, out), "4000.00"; got != want {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestAddDefaultSymbol(t *testing.T) {
	out, _ := useTempStore(t)
	run(t, "add", "-a", "2", "-first", "Ada", "-last", "Lovelace")

	if got, want := total(t, out), "60000.00"; got != want {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestAddRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero", []string{"-s", "ETH", "-a", "0", "-first", "Ada", "-last", "Lovelace"}, "amount"},
		{"negative", []string{"-s", "ETH", "-a", "-1", "-first", "Ada", "-last", "Lovelace"}, "amount"},
		{"not a number", []string{"-s", "ETH", "-a", "abc", "-first", "Ada", "-last", "Lovelace"}, "amount"},
		{"blank first name", []string{"-s", "ETH", "-a", "1", "-first", "  ", "-last", "Lovelace"}, "firstName"},
		{"missing last name", []string{"-s", "ETH", "-a", "1", "-first", "Ada"}, "lastName"},
		{"unknown symbol", []string{"-s", "DOGE", "-a", "1", "-first", "Ada", "-last", "Lovelace"}, "symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := useTempStore(t)
			if status := run(t, append([]string{"add"}, tt.args...)...); status != subcommands.ExitUsageError {
				t.Errorf("add = %v, want %v", status, subcommands.ExitUsageError)
			}
			if !strings.Contains(errOut.String(), tt.want) {
				t.Errorf("add error = %q, want it to mention %q", errOut, tt.want)
			}
			if got := total(t, out); got != "0.00" {
				t.Errorf("total after rejection = %s, want 0.00", got)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	out, errOut := useTempStore(t)
	run(t, "add", "-s", "ETH", "-a", "1.5", "-first", "Ada", "-last", "Lovelace")

	if status := run(t, "remove", "ETH"); status != subcommands.ExitSuccess {
		t.Fatalf("remove = %v", status)
	}
	if !strings.Contains(out.String(), "Removed ETH.") {
		t.Errorf("remove output = %q", out)
	}

	out.Reset()
	run(t, "list")
	if !strings.Contains(out.String(), "Your portfolio is empty.") {
		t.Errorf("list after remove = \n%s", out)
	}
	if got := total(t, out); got != "0.00" {
		t.Errorf("total after remove = %s, want 0.00", got)
	}

	if status := run(t, "remove", "BTC"); status != subcommands.ExitSuccess {
		t.Errorf("remove absent = %v, want success", status)
	}
	if !strings.Contains(errOut.String(), `no holding for "BTC"`) {
		t.Errorf("remove absent error output = %q", errOut)
	}

	if status := run(t, "remove"); status != subcommands.ExitUsageError {
		t.Errorf("remove without symbol = %v, want usage error", status)
	}
}

func TestDeleteAlias(t *testing.T) {
	out, _ := useTempStore(t)
	run(t, "add", "-s", "ADA", "-a", "3", "-first", "Ada", "-last", "Lovelace")

	if status := run(t, "delete", "ADA"); status != subcommands.ExitSuccess {
		t.Fatalf("delete = %v", status)
	}
	if got := total(t, out); got != "0.00" {
		t.Errorf("total after delete = %s, want 0.00", got)
	}
}

func TestExportImport(t *testing.T) {
	out, _ := useTempStore(t)
	run(t, "add", "-s", "ETH", "-a", "1.5", "-first", "Ada", "-last", "Lovelace", "-n", "cold, wallet")
	run(t, "add", "-s", "ADA", "-a", "3", "-first", "Alan", "-last", "Turing")

	file := filepath.Join(t.TempDir(), "holdings.csv")
	if status := run(t, "export", "-o", file); status != subcommands.ExitSuccess {
		t.Fatalf("export = %v", status)
	}

	// into another portfolio of the same backend
	setFlag(t, "key", "copy")
	out.Reset()
	if status := run(t, "import", file); status != subcommands.ExitSuccess {
		t.Fatalf("import = %v", status)
	}
	if !strings.Contains(out.String(), "Imported 2 of 2 rows.") {
		t.Errorf("import output = %q", out)
	}
	if got, want := total(t, out), "3001.50"; got != want {
		t.Errorf("total of the imported portfolio = %s, want %s", got, want)
	}
}

func TestImportSkipsInvalidRows(t *testing.T) {
	out, errOut := useTempStore(t)
	file := filepath.Join(t.TempDir(), "holdings.csv")
	content := "symbol,amount,ownerFirstName,ownerLastName\nBTC,1,Ada,Lovelace\nDOGE,1,Ada,Lovelace\nETH,0,Ada,Lovelace\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if status := run(t, "import", file); status != subcommands.ExitUsageError {
		t.Errorf("import = %v, want usage error", status)
	}
	for _, want := range []string{"line 3 skipped", "line 4 skipped"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("import errors do not contain %q, got %q", want, errOut)
		}
	}
	if got, want := total(t, out), "30000.00"; got != want {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestPrices(t *testing.T) {
	out, _ := useTempStore(t)
	if status := run(t, "prices"); status != subcommands.ExitSuccess {
		t.Fatalf("prices = %v", status)
	}
	if !strings.Contains(out.String(), "| BTC | $30,000.00 |") {
		t.Errorf("prices output = \n%s", out)
	}

	file := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(file, []byte(`{"source":"manual","prices":{"SOL":150}}`), 0644); err != nil {
		t.Fatal(err)
	}
	setFlag(t, "prices", file)
	t.Setenv(config.EnvPricesPath, "$.prices")

	out.Reset()
	run(t, "prices")
	if got := out.String(); !strings.Contains(got, "| SOL | $150.00 |") || strings.Contains(got, "BTC") {
		t.Errorf("prices output with a custom catalog = \n%s", got)
	}

	// BTC is not part of the custom catalog.
	if status := run(t, "add", "-s", "BTC", "-a", "1", "-first", "Ada", "-last", "Lovelace"); status != subcommands.ExitUsageError {
		t.Errorf("add BTC = %v, want usage error", status)
	}
}

func TestUnknownBackend(t *testing.T) {
	_, errOut := useTempStore(t)
	setFlag(t, "backend", "floppy")
	if status := run(t, "list"); status != subcommands.ExitFailure {
		t.Errorf("list = %v, want failure", status)
	}
	if !strings.Contains(errOut.String(), "floppy") {
		t.Errorf("list error = %q", errOut)
	}
}

func TestTopic(t *testing.T) {
	out, _ := useTempStore(t)
	if status := run(t, "topic", "holdings"); status != subcommands.ExitSuccess {
		t.Fatalf("topic = %v", status)
	}
	if !strings.HasPrefix(out.String(), "# Holdings\n") {
		t.Errorf("topic holdings = \n%s", out)
	}
	if status := run(t, "topic", "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope = %v, want failure", status)
	}
}
