package statements

// Resolve deduplicates freshly extracted securities against the caller's
// catalog.
//
// Every SecurityItem is matched by ISIN, then WKN, then name. On a hit the
// item is suppressed and all transactions in the pass are rewritten to
// reference the existing catalog entry, so the resulting item list shrinks
// by one per resolved security. On a miss the extracted security is added
// to the catalog and the item stays.
//
// The catalog mutation is the only side effect of an extraction pass, and
// it is explicit here: the caller hands in the catalog and observes it grow.
func Resolve(catalog *Catalog, items []Item) []Item {
	resolved := make(map[*Security]*Security)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case SecurityItem:
			if existing := catalog.Match(v.Security); existing != nil {
				resolved[v.Security] = existing
				continue
			}
			catalog.Add(v.Security)
			out = append(out, v)
		case TransactionItem:
			rewrite(&v.Transaction.transaction, resolved)
			out = append(out, v)
		case BuySellEntryItem:
			rewrite(&v.Entry.portfolio.transaction, resolved)
			rewrite(&v.Entry.account.transaction, resolved)
			out = append(out, v)
		}
	}
	return out
}

func rewrite(t *transaction, resolved map[*Security]*Security) {
	if t.security == nil {
		return
	}
	if existing, ok := resolved[t.security]; ok {
		t.security = existing
	}
}
