package cmd

import (
	"bytes"
	"fmt"

	"github.com/etnz/statements"
	md "github.com/nao1215/markdown"
)

// printMarkdown writes a markdown report to stdout.
func printMarkdown(report string) {
	fmt.Println(report)
}

// itemsMarkdown renders the extraction result of one document as a table,
// one row per item.
func itemsMarkdown(doc string, items []statements.Item) string {
	var buf bytes.Buffer
	out := md.NewMarkdown(&buf)

	out.H2(doc)
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow(item))
	}
	out.Table(md.TableSet{
		Header: []string{"Date", "Item", "Amount"},
		Rows:   rows,
	})
	return out.String()
}

func itemRow(item statements.Item) []string {
	switch v := item.(type) {
	case statements.SecurityItem:
		return []string{"", "new security " + v.Security.String(), ""}
	case statements.TransactionItem:
		return []string{
			v.When().Format(statements.DateFormat),
			string(v.Transaction.Kind()),
			v.Amount().String(),
		}
	case statements.BuySellEntryItem:
		sec := v.Entry.PortfolioTransaction().Security()
		label := string(v.Entry.PortfolioTransaction().Kind())
		if sec != nil {
			label += " " + sec.String()
		}
		return []string{
			v.When().Format(statements.DateFormat),
			label,
			v.Amount().String(),
		}
	}
	return nil
}
