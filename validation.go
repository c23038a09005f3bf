package statements

import "fmt"

// Code classifies the outcome of an import action.
type Code int

const (
	OK Code = iota
	Warning
	Error
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// Status is the verdict of one import action on one item.
type Status struct {
	Code    Code
	Message string
}

// StatusOK is the all-clear verdict.
var StatusOK = Status{Code: OK}

func failure(format string, args ...any) Status {
	return Status{Code: Error, Message: fmt.Sprintf(format, args...)}
}

// Account is the import target an extraction result is checked against.
// Only the currency matters to the validators.
type Account struct {
	name     string
	currency string
}

// NewAccount returns an account with the given name and currency.
func NewAccount(name, currency string) *Account {
	return &Account{name: name, currency: currency}
}

func (a *Account) Name() string     { return a.name }
func (a *Account) Currency() string { return a.currency }

// ImportAction checks a completed item against the target account before it
// is imported. Actions run after extraction, on the caller's side of the
// boundary; extraction itself only guarantees the intra-transaction closure.
type ImportAction interface {
	Process(item Item, account *Account) Status
}

// CheckCurrenciesAction verifies that a transaction, its units and their
// forex counterparts are denominated consistently with the target account.
type CheckCurrenciesAction struct{}

func (CheckCurrenciesAction) Process(item Item, account *Account) Status {
	switch v := item.(type) {
	case SecurityItem:
		if err := ValidateCurrency(v.Security.Currency()); err != nil {
			return failure("security %s: %v", v.Security, err)
		}
		return StatusOK
	case TransactionItem:
		return checkCurrencies(&v.Transaction.transaction, v.Transaction.CurrencyCode(), account)
	case BuySellEntryItem:
		p, a := v.Entry.PortfolioTransaction(), v.Entry.AccountTransaction()
		if p.CurrencyCode() != a.CurrencyCode() {
			return failure("entry legs disagree on currency: %s vs %s", p.CurrencyCode(), a.CurrencyCode())
		}
		if s := checkCurrencies(&p.transaction, p.CurrencyCode(), account); s.Code != OK {
			return s
		}
		return checkCurrencies(&a.transaction, a.CurrencyCode(), account)
	}
	return StatusOK
}

func checkCurrencies(t *transaction, currency string, account *Account) Status {
	if currency != account.Currency() {
		return failure("transaction in %s cannot be imported into %s account", currency, account.Currency())
	}
	for _, u := range t.units {
		if u.Amount().Currency() != currency {
			return failure("%s unit in %s on a %s transaction", u.Kind(), u.Amount().Currency(), currency)
		}
		forex, ok := u.Forex()
		if !ok {
			continue
		}
		if forex.Currency() == currency {
			return failure("%s unit declares a forex amount in the transaction currency %s", u.Kind(), currency)
		}
		if sec := t.security; sec != nil && u.Kind() == UnitGrossValue && sec.Currency() != forex.Currency() {
			return failure("gross value forex in %s but security %s is quoted in %s",
				forex.Currency(), sec, sec.Currency())
		}
	}
	return StatusOK
}

// CheckClosureAction verifies the closure invariant of the item's
// transactions.
type CheckClosureAction struct{}

func (CheckClosureAction) Process(item Item, account *Account) Status {
	switch v := item.(type) {
	case SecurityItem:
		return StatusOK
	case TransactionItem:
		if err := v.Transaction.CheckClosure(); err != nil {
			return failure("%v", err)
		}
		return StatusOK
	case BuySellEntryItem:
		if err := v.Entry.CheckClosure(); err != nil {
			return failure("%v", err)
		}
		return StatusOK
	}
	return StatusOK
}
