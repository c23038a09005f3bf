package statements

import "time"

// Item is the envelope an extraction pass emits: a newly discovered
// security, a standalone cash transaction, or a paired purchase/sale.
//
// It is a closed sum: consumers switch over the three concrete types and
// the compiler-enforced item() method keeps foreign implementations out.
type Item interface {
	// When returns the transaction date of the subject, zero for securities.
	When() time.Time
	// Amount returns the reportable amount of the subject for summaries,
	// zero for securities.
	Amount() Money
	item()
}

// SecurityItem announces a security that was not found in the catalog.
type SecurityItem struct {
	Security *Security
}

func (SecurityItem) When() time.Time { return time.Time{} }
func (SecurityItem) Amount() Money   { return Money{} }
func (SecurityItem) item()           {}

// TransactionItem wraps a standalone cash transaction.
type TransactionItem struct {
	Transaction *AccountTransaction
}

func (i TransactionItem) When() time.Time { return i.Transaction.DateTime() }
func (i TransactionItem) Amount() Money   { return i.Transaction.MonetaryAmount() }
func (i TransactionItem) item()           {}

// BuySellEntryItem wraps a paired purchase or sale.
type BuySellEntryItem struct {
	Entry *BuySellEntry
}

func (i BuySellEntryItem) When() time.Time { return i.Entry.PortfolioTransaction().DateTime() }
func (i BuySellEntryItem) Amount() Money   { return i.Entry.PortfolioTransaction().MonetaryAmount() }
func (i BuySellEntryItem) item()           {}
