package statements

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// mustRate inverts a bank-quoted devkurs into a base→term rate.
func mustRate(devkurs string) decimal.Decimal {
	return decimal.New(1, 0).DivRound(decimal.RequireFromString(devkurs), 10)
}

func decodeLines(t *testing.T, items []Item) []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeItems(&buf, items); err != nil {
		t.Fatal(err)
	}
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	out := make([]map[string]any, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal(line, &out[i]); err != nil {
			t.Fatalf("line %d is not valid JSON: %v\n%s", i, err, line)
		}
	}
	return out
}

func TestEncodeItems(t *testing.T) {
	sec := NewSecurity("DEUTSCHE TELEKOM AG NAMENS-AKTIEN O.N.", "EUR")
	sec.SetWKN("555750")

	tx := NewAccountTransaction(AccDividends)
	tx.SetMonetaryAmount(M(33.51, "EUR"))
	tx.SetDateTime(time.Date(2016, 5, 12, 0, 0, 0, 0, time.UTC))
	tx.SetShares(Q(80))
	tx.SetSecurity(sec)
	tx.AddUnit(NewUnit(UnitTax, M(30.57, "EUR")))

	entry := NewBuySellEntry(PortBuy)
	entry.SetMonetaryAmount(M(399.96, "EUR"))
	entry.SetShares(Q(66))
	entry.AddUnit(NewUnit(UnitFee, M(3.96, "EUR")))

	lines := decodeLines(t, []Item{
		SecurityItem{Security: sec},
		TransactionItem{Transaction: tx},
		BuySellEntryItem{Entry: entry},
	})
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want one per item", len(lines))
	}

	if lines[0]["item"] != "security" {
		t.Errorf(`line 0 item = %v, want "security"`, lines[0]["item"])
	}
	secObj := lines[0]["security"].(map[string]any)
	if secObj["wkn"] != "555750" {
		t.Errorf("security wkn = %v", secObj["wkn"])
	}
	if _, ok := secObj["isin"]; ok {
		t.Error("empty ISIN must be omitted")
	}

	if lines[1]["item"] != "transaction" {
		t.Errorf(`line 1 item = %v, want "transaction"`, lines[1]["item"])
	}
	txObj := lines[1]["transaction"].(map[string]any)
	if txObj["kind"] != "DIVIDENDS" {
		t.Errorf("kind = %v", txObj["kind"])
	}
	if txObj["dateTime"] != "2016-05-12T00:00:00Z" {
		t.Errorf("dateTime = %v", txObj["dateTime"])
	}
	amount := txObj["amount"].(map[string]any)
	if amount["currency"] != "EUR" || amount["amount"] != "33.51" {
		t.Errorf("amount = %v", amount)
	}
	units := txObj["units"].([]any)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if unit := units[0].(map[string]any); unit["kind"] != "TAX" {
		t.Errorf("unit kind = %v", unit["kind"])
	}
	if txObj["security"] != sec.ID().String() {
		t.Errorf("security reference = %v, want the security id", txObj["security"])
	}

	if lines[2]["item"] != "entry" {
		t.Errorf(`line 2 item = %v, want "entry"`, lines[2]["item"])
	}
	entryObj := lines[2]["entry"].(map[string]any)
	portfolio := entryObj["portfolio"].(map[string]any)
	account := entryObj["account"].(map[string]any)
	if portfolio["kind"] != "BUY" || account["kind"] != "BUY" {
		t.Errorf("leg kinds = %v/%v", portfolio["kind"], account["kind"])
	}
	if _, ok := portfolio["units"]; !ok {
		t.Error("fee unit missing from the portfolio leg")
	}
	if _, ok := account["units"]; ok {
		t.Error("units leaked onto the cash leg")
	}
}

func TestEncodeMoneyFixedPrecision(t *testing.T) {
	// amounts encode with the currency's full minor-unit precision, so
	// identical extractions stay byte-identical
	tests := []struct {
		amount Money
		want   string
	}{
		{M(180.00, "USD"), `{"currency":"USD","amount":"180.00"}`},
		{M(33.51, "EUR"), `{"currency":"EUR","amount":"33.51"}`},
		{M(5000.00, "EUR"), `{"currency":"EUR","amount":"5000.00"}`},
		{M(150, "JPY"), `{"currency":"JPY","amount":"150"}`},
	}
	for _, tc := range tests {
		b, err := json.Marshal(tc.amount)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != tc.want {
			t.Errorf("Marshal(%s) = %s, want %s", tc.amount, b, tc.want)
		}
	}
}

func TestEncodeForexUnit(t *testing.T) {
	tx := NewAccountTransaction(AccDividends)
	tx.SetMonetaryAmount(M(121.36, "EUR"))
	u, err := NewForexUnit(UnitGrossValue, M(163.00, "EUR"), M(180.00, "USD"), mustRate("1.104294"))
	if err != nil {
		t.Fatal(err)
	}
	tx.AddUnit(u)

	lines := decodeLines(t, []Item{TransactionItem{Transaction: tx}})
	units := lines[0]["transaction"].(map[string]any)["units"].([]any)
	unit := units[0].(map[string]any)
	if unit["kind"] != "GROSS_VALUE" {
		t.Errorf("kind = %v", unit["kind"])
	}
	forex := unit["forex"].(map[string]any)
	if forex["currency"] != "USD" || forex["amount"] != "180.00" {
		t.Errorf("forex = %v", forex)
	}
	if _, ok := unit["rate"]; !ok {
		t.Error("forex unit encoded without its rate")
	}
}
