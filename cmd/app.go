// Package cmd implements the CLI application to extract bank statements.
package cmd

import (
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&extractCmd{}, "statements")
	c.Register(&banksCmd{}, "statements")

	c.Register(&convertCmd{}, "rates")
	c.Register(&ratesCmd{}, "rates")
}
