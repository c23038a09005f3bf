package statements

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCheckCurrenciesAction(t *testing.T) {
	account := NewAccount("Depotkonto", "EUR")
	action := CheckCurrenciesAction{}

	t.Run("matching transaction passes", func(t *testing.T) {
		tx := NewAccountTransaction(AccDividends)
		tx.SetMonetaryAmount(M(33.51, "EUR"))
		tx.AddUnit(NewUnit(UnitTax, M(30.57, "EUR")))
		if s := action.Process(TransactionItem{Transaction: tx}, account); s.Code != OK {
			t.Errorf("status = %v", s)
		}
	})

	t.Run("foreign transaction fails", func(t *testing.T) {
		tx := NewAccountTransaction(AccDividends)
		tx.SetMonetaryAmount(M(33.51, "USD"))
		if s := action.Process(TransactionItem{Transaction: tx}, account); s.Code != Error {
			t.Errorf("status = %v, want an error for a USD booking on an EUR account", s)
		}
	})

	t.Run("unit in a foreign currency fails", func(t *testing.T) {
		tx := NewAccountTransaction(AccDividends)
		tx.SetMonetaryAmount(M(33.51, "EUR"))
		tx.AddUnit(NewUnit(UnitTax, M(1.00, "USD")))
		if s := action.Process(TransactionItem{Transaction: tx}, account); s.Code != Error {
			t.Errorf("status = %v, want an error for a USD unit", s)
		}
	})

	t.Run("forex gross must match the security currency", func(t *testing.T) {
		sec := NewSecurity("Apple Inc.", "USD")
		rate := decimal.New(1, 0).DivRound(decimal.RequireFromString("1.104294"), 10)
		u, err := NewForexUnit(UnitGrossValue, M(163.00, "EUR"), M(180.00, "USD"), rate)
		if err != nil {
			t.Fatal(err)
		}
		tx := NewAccountTransaction(AccDividends)
		tx.SetMonetaryAmount(M(121.36, "EUR"))
		tx.SetSecurity(sec)
		tx.AddUnit(u)
		if s := action.Process(TransactionItem{Transaction: tx}, account); s.Code != OK {
			t.Errorf("status = %v", s)
		}

		// the same unit against a EUR-quoted security is inconsistent
		tx.SetSecurity(NewSecurity("Apple Inc.", "EUR"))
		if s := action.Process(TransactionItem{Transaction: tx}, account); s.Code != Error {
			t.Errorf("status = %v, want an error for a USD gross on an EUR security", s)
		}
	})

	t.Run("entry legs must agree", func(t *testing.T) {
		entry := NewBuySellEntry(PortBuy)
		entry.SetMonetaryAmount(M(5000.00, "EUR"))
		if s := action.Process(BuySellEntryItem{Entry: entry}, account); s.Code != OK {
			t.Errorf("status = %v", s)
		}
	})

	t.Run("security currency is validated", func(t *testing.T) {
		if s := action.Process(SecurityItem{Security: NewSecurity("X", "EURO")}, account); s.Code != Error {
			t.Errorf("status = %v, want an error for a malformed currency", s)
		}
	})
}

func TestCheckClosureAction(t *testing.T) {
	account := NewAccount("Depotkonto", "EUR")
	action := CheckClosureAction{}

	tx := NewAccountTransaction(AccDividends)
	tx.SetMonetaryAmount(M(121.36, "EUR"))
	tx.AddUnit(NewUnit(UnitTax, M(41.64, "EUR")))
	tx.AddUnit(NewUnit(UnitGrossValue, M(163.00, "EUR")))
	if s := action.Process(TransactionItem{Transaction: tx}, account); s.Code != OK {
		t.Errorf("status = %v", s)
	}

	broken := NewAccountTransaction(AccDividends)
	broken.SetMonetaryAmount(M(121.36, "EUR"))
	broken.AddUnit(NewUnit(UnitGrossValue, M(163.00, "EUR")))
	s := action.Process(TransactionItem{Transaction: broken}, account)
	if s.Code != Error {
		t.Errorf("status = %v, want an error for a gross unit nothing adds up to", s)
	}
	if s.Message == "" {
		t.Error("error status carries no message")
	}

	if s := action.Process(SecurityItem{Security: NewSecurity("X", "EUR")}, account); s.Code != OK {
		t.Errorf("status = %v, securities have no closure", s)
	}
}
