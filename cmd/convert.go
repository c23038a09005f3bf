package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements"
	"github.com/etnz/statements/ecb"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type convertCmd struct {
	amount   string
	currency string
	term     string
	date     string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount using the ECB reference rate" }
func (*convertCmd) Usage() string {
	return `stx convert -a <amount> -c <currency> [-t <term_currency>] [-d <date>]

  Converts an amount into the term currency at the ECB euro foreign exchange
  reference rate of the given day. Days without a published rate fail; rates
  are never interpolated.

Usage Examples:
# What were 180 USD worth in EUR on 2015-05-14?
$ stx convert -a 180.00 -c USD -d 2015-05-14

`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount to convert.")
	f.StringVar(&c.currency, "c", "", "Currency of the amount.")
	f.StringVar(&c.term, "t", "EUR", "Currency to convert into.")
	f.StringVar(&c.date, "d", "", "Day of the rate, in ISO-8601 format.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	value, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := statements.ValidateCurrency(c.currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := statements.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	amount := statements.M(value, c.currency)
	converter := statements.NewCurrencyConverter(ecb.NewClient(on, on), c.term)

	converted, err := converter.Convert(on, amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rate, err := converter.RateAt(on, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s = %s on %s (rate %s)\n", amount, converted, on, rate.Value)
	return subcommands.ExitSuccess
}
