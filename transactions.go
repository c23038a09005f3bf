package statements

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitKind tags a sub-amount attached to a transaction.
type UnitKind string

const (
	UnitTax        UnitKind = "TAX"
	UnitFee        UnitKind = "FEE"
	UnitGrossValue UnitKind = "GROSS_VALUE"
)

// ErrClosure reports that the net amount, gross value and tax/fee units of
// a transaction do not sum up within the one-minor-unit tolerance.
var ErrClosure = errors.New("unit closure violated")

// ErrForexMismatch reports that a unit's forex amount and its exchange rate
// do not reproduce the unit amount within the one-minor-unit tolerance.
var ErrForexMismatch = errors.New("forex amount and exchange rate disagree")

// Unit is a tagged sub-amount of a transaction: a tax or fee line, or the
// gross value of the booking.
//
// When the statement quotes the line in a foreign currency, the unit keeps
// the original forex amount together with the exchange rate the bank used
// for that specific line. The bank's own rounding is preserved; nothing is
// recomputed from a general rate series.
type Unit struct {
	kind   UnitKind
	amount Money
	forex  Money
	rate   decimal.Decimal
}

// NewUnit returns a unit denominated in the transaction currency only.
func NewUnit(kind UnitKind, amount Money) Unit {
	return Unit{kind: kind, amount: amount}
}

// NewForexUnit returns a unit whose amount was converted by the bank from a
// foreign-currency original. The stated rate converts forex into amount;
// the two must agree within one minor unit.
func NewForexUnit(kind UnitKind, amount, forex Money, rate decimal.Decimal) (Unit, error) {
	if forex.Currency() == amount.Currency() {
		return Unit{}, fmt.Errorf("forex unit needs a foreign currency, got %s twice", forex.Currency())
	}
	converted := decimal.New(forex.MinorUnits(), 0).Mul(rate).Round(0).IntPart()
	diff := converted - amount.MinorUnits()
	if diff < -1 || diff > 1 {
		return Unit{}, fmt.Errorf("%w: %s × %s = %s, statement says %s",
			ErrForexMismatch, forex, rate, Cents(converted, amount.Currency()), amount)
	}
	return Unit{kind: kind, amount: amount, forex: forex, rate: rate}, nil
}

func (u Unit) Kind() UnitKind        { return u.kind }
func (u Unit) Amount() Money         { return u.amount }
func (u Unit) Rate() decimal.Decimal { return u.rate }

// Forex returns the original foreign-currency amount, if any.
func (u Unit) Forex() (Money, bool) { return u.forex, u.forex.Currency() != "" }

// transaction carries the state shared by both transaction variants.
type transaction struct {
	id       uuid.UUID
	dateTime time.Time
	amount   Money
	shares   Quantity
	security *Security
	units    []Unit
}

func newTransaction() transaction { return transaction{id: uuid.New()} }

func (t *transaction) ID() uuid.UUID          { return t.id }
func (t *transaction) DateTime() time.Time    { return t.dateTime }
func (t *transaction) SetDateTime(d time.Time) { t.dateTime = d }
func (t *transaction) CurrencyCode() string   { return t.amount.Currency() }
func (t *transaction) MonetaryAmount() Money  { return t.amount }
func (t *transaction) Security() *Security    { return t.security }
func (t *transaction) SetSecurity(s *Security) { t.security = s }
func (t *transaction) Shares() Quantity       { return t.shares }

// SetMonetaryAmount sets the booked amount and with it the transaction currency.
func (t *transaction) SetMonetaryAmount(m Money) { t.amount = m }

// SetShares records the share count. A negative count is data corruption,
// not a decode problem, so it aborts the extraction of the document.
func (t *transaction) SetShares(q Quantity) {
	if q.IsNegative() {
		panic(fmt.Sprintf("negative share count %s", q))
	}
	t.shares = q
}

// AddUnit attaches a sub-amount. Zero-valued tax and fee lines are dropped:
// an absent unit, not a zero unit, which keeps item counts stable for
// documents without taxes.
func (t *transaction) AddUnit(u Unit) {
	if u.amount.IsZero() && u.kind != UnitGrossValue {
		return
	}
	t.units = append(t.units, u)
}

// Units returns the attached sub-amounts in attachment order.
func (t *transaction) Units() []Unit {
	out := make([]Unit, len(t.units))
	copy(out, t.units)
	return out
}

// Unit returns the first attached unit of that kind.
func (t *transaction) Unit(kind UnitKind) (Unit, bool) {
	for _, u := range t.units {
		if u.kind == kind {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitSum returns the sum of all units of that kind, in the transaction currency.
func (t *transaction) UnitSum(kind UnitKind) Money {
	sum := Cents(0, t.amount.Currency())
	for _, u := range t.units {
		if u.kind == kind {
			sum = sum.Add(u.amount)
		}
	}
	return sum
}

// grossValue derives the gross value from the net amount and the tax/fee
// units. An explicit GROSS_VALUE unit wins over the derivation.
// For a debit (money leaves the account) the booked amount already includes
// taxes and fees; for a credit they were deducted before booking.
func (t *transaction) grossValue(debit bool) Money {
	if u, ok := t.Unit(UnitGrossValue); ok {
		return u.Amount()
	}
	taxes, fees := t.UnitSum(UnitTax), t.UnitSum(UnitFee)
	if debit {
		return t.amount.Sub(taxes).Sub(fees)
	}
	return t.amount.Add(taxes).Add(fees)
}

// checkClosure validates the closure invariant within one minor unit.
func (t *transaction) checkClosure(debit bool) error {
	u, ok := t.Unit(UnitGrossValue)
	if !ok {
		return nil // gross is derived, closure holds by construction
	}
	taxes, fees := t.UnitSum(UnitTax), t.UnitSum(UnitFee)
	var derived Money
	if debit {
		derived = t.amount.Sub(taxes).Sub(fees)
	} else {
		derived = t.amount.Add(taxes).Add(fees)
	}
	if !derived.CloseTo(u.Amount()) {
		return fmt.Errorf("%w: net %s, taxes %s, fees %s against gross %s",
			ErrClosure, t.amount, taxes, fees, u.Amount())
	}
	return nil
}

// AccountTxKind identifies the cash effect of an AccountTransaction.
type AccountTxKind string

const (
	AccDividends AccountTxKind = "DIVIDENDS"
	AccBuy       AccountTxKind = "BUY"
	AccSell      AccountTxKind = "SELL"
	AccTaxes     AccountTxKind = "TAXES"
	AccTaxRefund AccountTxKind = "TAX_REFUND"
	AccFees      AccountTxKind = "FEES"
	AccInterest  AccountTxKind = "INTEREST"
	AccDeposit   AccountTxKind = "DEPOSIT"
	AccRemoval   AccountTxKind = "REMOVAL"
)

// Debit reports whether the kind moves money out of the account.
func (k AccountTxKind) Debit() bool {
	switch k {
	case AccBuy, AccTaxes, AccFees, AccRemoval:
		return true
	}
	return false
}

// AccountTransaction is a cash-only booking. It may reference a security
// (a dividend does) but carries no position change.
type AccountTransaction struct {
	transaction
	kind AccountTxKind
}

// NewAccountTransaction returns an empty cash booking of the given kind.
func NewAccountTransaction(kind AccountTxKind) *AccountTransaction {
	return &AccountTransaction{transaction: newTransaction(), kind: kind}
}

func (t *AccountTransaction) Kind() AccountTxKind { return t.kind }

// GrossValue returns the value of the booking before taxes and fees.
func (t *AccountTransaction) GrossValue() Money { return t.grossValue(t.kind.Debit()) }

// CheckClosure validates the closure invariant of the booking.
func (t *AccountTransaction) CheckClosure() error { return t.checkClosure(t.kind.Debit()) }

// PortfolioTxKind identifies the position effect of a PortfolioTransaction.
type PortfolioTxKind string

const (
	PortBuy  PortfolioTxKind = "BUY"
	PortSell PortfolioTxKind = "SELL"
)

// Debit reports whether the kind pays money for the position.
func (k PortfolioTxKind) Debit() bool { return k == PortBuy }

// account returns the cash kind mirroring the position kind.
func (k PortfolioTxKind) account() AccountTxKind {
	if k == PortBuy {
		return AccBuy
	}
	return AccSell
}

// PortfolioTransaction is a security-quantity-bearing booking.
type PortfolioTransaction struct {
	transaction
	kind PortfolioTxKind
}

// NewPortfolioTransaction returns an empty position booking of the given kind.
func NewPortfolioTransaction(kind PortfolioTxKind) *PortfolioTransaction {
	return &PortfolioTransaction{transaction: newTransaction(), kind: kind}
}

func (t *PortfolioTransaction) Kind() PortfolioTxKind { return t.kind }

// GrossValue returns the pure security value of the booking, taxes and fees excluded.
func (t *PortfolioTransaction) GrossValue() Money { return t.grossValue(t.kind.Debit()) }

// CheckClosure validates the closure invariant of the booking.
func (t *PortfolioTransaction) CheckClosure() error { return t.checkClosure(t.kind.Debit()) }

// GrossPricePerShare returns the gross value divided by the share count.
func (t *PortfolioTransaction) GrossPricePerShare() Money {
	return t.GrossValue().Div(t.shares)
}

// BuySellEntry pairs the security leg and the cash leg of one purchase or
// sale. Both legs share date, amount, currency, shares and security; the
// setters keep them aligned.
type BuySellEntry struct {
	portfolio *PortfolioTransaction
	account   *AccountTransaction
}

// NewBuySellEntry returns an entry with both legs of the given direction.
func NewBuySellEntry(kind PortfolioTxKind) *BuySellEntry {
	return &BuySellEntry{
		portfolio: NewPortfolioTransaction(kind),
		account:   NewAccountTransaction(kind.account()),
	}
}

func (e *BuySellEntry) PortfolioTransaction() *PortfolioTransaction { return e.portfolio }
func (e *BuySellEntry) AccountTransaction() *AccountTransaction     { return e.account }

func (e *BuySellEntry) SetDateTime(d time.Time) {
	e.portfolio.SetDateTime(d)
	e.account.SetDateTime(d)
}

func (e *BuySellEntry) SetSecurity(s *Security) {
	e.portfolio.SetSecurity(s)
	e.account.SetSecurity(s)
}

func (e *BuySellEntry) SetMonetaryAmount(m Money) {
	e.portfolio.SetMonetaryAmount(m)
	e.account.SetMonetaryAmount(m)
}

func (e *BuySellEntry) SetShares(q Quantity) {
	e.portfolio.SetShares(q)
	e.account.SetShares(q)
}

// AddUnit attaches the sub-amount to the security leg, where position
// accounting expects it.
func (e *BuySellEntry) AddUnit(u Unit) { e.portfolio.AddUnit(u) }

// CheckClosure validates the closure invariant of the security leg.
func (e *BuySellEntry) CheckClosure() error { return e.portfolio.CheckClosure() }
