package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/statements/pdf"
	"github.com/google/subcommands"
)

type banksCmd struct{}

func (*banksCmd) Name() string     { return "banks" }
func (*banksCmd) Synopsis() string { return "list the banks statements can be extracted from" }
func (*banksCmd) Usage() string {
	return `stx banks

  Lists the bank labels accepted by 'stx extract -b'.
`
}

func (*banksCmd) SetFlags(f *flag.FlagSet) {}

func (*banksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, label := range pdf.Labels() {
		fmt.Println(label)
	}
	return subcommands.ExitSuccess
}
