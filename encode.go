package statements

import (
	"fmt"
	"io"
	"time"
)

// This file encodes extraction results as JSONL, one item per line, with a
// fixed field order so identical extractions produce identical bytes.

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.Decimal().StringFixed(int32(fraction(m.cur))))
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface.
func (u Unit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", u.kind)
	w.Append("amount", u.amount)
	if forex, ok := u.Forex(); ok {
		w.Append("forex", forex)
		w.Append("rate", u.rate)
	}
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface.
func (s *Security) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", s.id)
	w.Optional("isin", s.isin)
	w.Optional("wkn", s.wkn)
	w.Append("name", s.name)
	w.Optional("currency", s.currency)
	return w.MarshalJSON()
}

// appendTransaction writes the fields shared by both transaction variants.
func (t *transaction) appendTransaction(w *jsonObjectWriter) {
	w.Append("id", t.id)
	if !t.dateTime.IsZero() {
		w.Append("dateTime", t.dateTime.Format(time.RFC3339))
	}
	if t.security != nil {
		w.Append("security", t.security.ID())
	}
	if !t.shares.IsZero() {
		w.Append("shares", t.shares)
	}
	w.Append("amount", t.amount)
	if len(t.units) > 0 {
		w.Append("units", t.units)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (t *AccountTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", t.kind)
	t.appendTransaction(&w)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface.
func (t *PortfolioTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", t.kind)
	t.appendTransaction(&w)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface.
func (e *BuySellEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("portfolio", e.portfolio)
	w.Append("account", e.account)
	return w.MarshalJSON()
}

// encodeItem wraps an item with its variant tag.
func encodeItem(item Item) ([]byte, error) {
	var w jsonObjectWriter
	switch v := item.(type) {
	case SecurityItem:
		w.Append("item", "security")
		w.Append("security", v.Security)
	case TransactionItem:
		w.Append("item", "transaction")
		w.Append("transaction", v.Transaction)
	case BuySellEntryItem:
		w.Append("item", "entry")
		w.Append("entry", v.Entry)
	}
	return w.MarshalJSON()
}

// EncodeItems writes the items as JSONL in emission order.
func EncodeItems(w io.Writer, items []Item) error {
	for _, item := range items {
		b, err := encodeItem(item)
		if err != nil {
			return fmt.Errorf("encoding item: %w", err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
