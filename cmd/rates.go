package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements"
	"github.com/etnz/statements/ecb"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type ratesCmd struct {
	base  string
	term  string
	start string
	end   string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "list the ECB reference rates for a currency pair" }
func (*ratesCmd) Usage() string {
	return `stx rates -b <base> [-t <term>] -s <start_date> [-d <end_date>]

  Lists the daily ECB reference rates for the currency pair over the given
  date range. Weekends and ECB holidays carry no rate and are omitted.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "b", "", "Base currency of the pair.")
	f.StringVar(&c.term, "t", "EUR", "Term currency of the pair.")
	f.StringVar(&c.start, "s", "", "Start of the range, in ISO-8601 format.")
	f.StringVar(&c.end, "d", "", "End of the range. Defaults to the start day.")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := statements.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to := from
	if c.end != "" {
		if to, err = statements.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if err := statements.ValidateCurrency(c.base); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	series, ok := ecb.NewClient(from, to).Series(c.base, c.term)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no rate series for %s/%s\n", c.base, c.term)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	out := md.NewMarkdown(&buf)
	out.H2(fmt.Sprintf("%s/%s reference rates", c.base, c.term))
	rows := make([][]string, 0, series.Len())
	for _, rate := range series.Rates() {
		rows = append(rows, []string{rate.Day.String(), rate.Value.String()})
	}
	out.Table(md.TableSet{Header: []string{"Day", "Rate"}, Rows: rows})
	printMarkdown(out.String())
	return subcommands.ExitSuccess
}
