package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/pdf"
	"github.com/google/subcommands"
)

type extractCmd struct {
	bank      string
	itemsFile string
	currency  string
}

func (*extractCmd) Name() string     { return "extract" }
func (*extractCmd) Synopsis() string { return "extract transactions from bank statement text files" }
func (*extractCmd) Usage() string {
	return `stx extract -b <bank> [-o <items_file>] [-a <currency>] <file>...

  Extracts securities and transactions from statement text files, resolves
  securities across all files of the run, checks the result against the
  target account currency, and appends the items to the items file (JSONL).

Usage Examples:
# Extract two Consorsbank statements into items.jsonl.
$ stx extract -b consorsbank dividend.txt buy.txt

`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "b", "", "Bank that produced the statements. See 'stx banks'.")
	f.StringVar(&c.itemsFile, "o", "items.jsonl", "Path to the items file (JSONL format).")
	f.StringVar(&c.currency, "a", "EUR", "Currency of the target account.")
}

func (c *extractCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	extractor, ok := pdf.Lookup(c.bank)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown bank %q, expected one of: %s\n", c.bank, strings.Join(pdf.Labels(), ", "))
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no statement files given")
		return subcommands.ExitUsageError
	}

	account := statements.NewAccount(c.bank, c.currency)
	checks := []statements.ImportAction{
		statements.CheckCurrenciesAction{},
		statements.CheckClosureAction{},
	}

	// one catalog for the whole run, so a security named by several files
	// resolves to a single entry
	catalog := statements.NewCatalog()
	var all []statements.Item
	status := subcommands.ExitSuccess

	for _, name := range f.Args() {
		content, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		doc := pdf.NewDocument(filepath.Base(name), string(content))
		items, errs := extractor.Extract(doc, catalog)
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
		}
		for _, item := range items {
			for _, check := range checks {
				if s := check.Process(item, account); s.Code != statements.OK {
					fmt.Fprintf(os.Stderr, "%s: %s: %s\n", doc.Name, s.Code, s.Message)
					if s.Code == statements.Error {
						status = subcommands.ExitFailure
					}
				}
			}
		}
		printMarkdown(itemsMarkdown(doc.Name, items))
		all = append(all, items...)
	}

	if err := c.appendItems(all); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to items file %q: %v\n", c.itemsFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended %d items to %s\n", len(all), c.itemsFile)
	return status
}

// appendItems appends the extracted items to the items file, creating it if
// it doesn't exist.
func (c *extractCmd) appendItems(items []statements.Item) error {
	f, err := os.OpenFile(c.itemsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return statements.EncodeItems(f, items)
}
