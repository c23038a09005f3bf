package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/statements"
)

func TestItemsMarkdown(t *testing.T) {
	sec := statements.NewSecurity("DEUTSCHE TELEKOM AG", "EUR")
	sec.SetWKN("555750")

	tx := statements.NewAccountTransaction(statements.AccDividends)
	tx.SetMonetaryAmount(statements.M(33.51, "EUR"))
	tx.SetDateTime(time.Date(2016, 5, 12, 0, 0, 0, 0, time.UTC))
	tx.SetSecurity(sec)

	report := itemsMarkdown("dividend.txt", []statements.Item{
		statements.SecurityItem{Security: sec},
		statements.TransactionItem{Transaction: tx},
	})

	for _, want := range []string{
		"## dividend.txt",
		"DEUTSCHE TELEKOM AG (555750)",
		"2016-05-12",
		"DIVIDENDS",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report does not mention %q:\n%s", want, report)
		}
	}
}
