package pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/statements"
	"github.com/shopspring/decimal"
)

// Consorsbank statements identify the instrument with a fixed two-line
// shape (share count and WKN, then the name) and book amounts in labelled
// columns. One definition covers the five document kinds the bank prints:
// dividend credit, purchase, subscription-rights purchase, sale, and the
// retroactive loss-allocation notice.

// Consorsbank returns the extractor definition for Consorsbank statements.
func Consorsbank() *Definition {
	return NewDefinition("Consorsbank",
		dividendType(),
		tradeType("buy", "KAUF", statements.PortBuy),
		tradeType("subscription", "BEZUG", statements.PortBuy),
		tradeType("sell", "VERKAUF", statements.PortSell),
		taxCorrectionType(),
	)
}

// Lookup returns a registered extractor by its lowercase label.
func Lookup(name string) (Extractor, bool) {
	switch strings.ToLower(name) {
	case "consorsbank":
		return Consorsbank(), true
	}
	return nil, false
}

// Labels lists the registered extractor labels.
func Labels() []string { return []string{"consorsbank"} }

// securityRules decode the instrument identification lines:
//
//	ST 80,00000              WKN: 891106
//	ROCHE HOLDING AG
//	ISIN: CH0012032048
//
// The ISIN line is printed only on newer statements.
func securityRules() []CaptureRule {
	return []CaptureRule{
		{
			Name:    "shares",
			Pattern: regexp.MustCompile(`(?m)^ST (?P<shares>[\d.,]+)[ \t]+WKN: (?P<wkn>[A-Z0-9]{6})[ \t]*$`),
			Fields:  map[string]FieldKind{"shares": Number, "wkn": Text},
		},
		{
			Name:    "name",
			Pattern: regexp.MustCompile(`(?m)^ST [\d.,]+[ \t]+WKN: [A-Z0-9]{6}[ \t]*\n(?P<name>[^\n]+?)[ \t]*$`),
			Fields:  map[string]FieldKind{"name": Text},
		},
		{
			Name:     "isin",
			Optional: true,
			Pattern:  regexp.MustCompile(`(?m)^ISIN: (?P<isin>[A-Z]{2}[A-Z0-9]{9}[0-9])[ \t]*$`),
			Fields:   map[string]FieldKind{"isin": Text},
		},
	}
}

// securityFromContext builds the extracted security from the decoded
// identification fields. The quote currency is the currency of the gross
// amount, which may differ from the booking currency.
func securityFromContext(ctx *Context, currency string) (*statements.Security, error) {
	sec := statements.NewSecurity(ctx.Text("name"), currency)
	if wkn := ctx.Text("wkn"); wkn != "" {
		if err := sec.SetWKN(wkn); err != nil {
			return nil, fmt.Errorf("%s: %w", ctx.Doc().Name, err)
		}
	}
	if isin := ctx.Text("isin"); isin != "" {
		if err := sec.SetISIN(isin); err != nil {
			return nil, fmt.Errorf("%s: %w", ctx.Doc().Name, err)
		}
	}
	return sec, nil
}

func addTax(ctx *Context) error {
	ctx.AddUnit(statements.NewUnit(statements.UnitTax, ctx.Amount("taxcur", "tax")))
	return nil
}

func addFee(ctx *Context) error {
	ctx.AddUnit(statements.NewUnit(statements.UnitFee, ctx.Amount("feecur", "fee")))
	return nil
}

// dividendType decodes an Ertragsgutschrift: the dividend credit note.
func dividendType() DocType {
	return DocType{
		Name:  "dividend",
		Match: regexp.MustCompile(`(?m)^[ \t]*(?:ERTRAGSGUTSCHRIFT|DIVIDENDENGUTSCHRIFT)[ \t]*$`),
		Blocks: []BlockDef{
			{
				Name:     "security",
				Required: true,
				Begin:    regexp.MustCompile(`(?m)^ST [\d.,]+[ \t]+WKN:`),
				End:      regexp.MustCompile(`(?m)^DIVIDENDENGUTSCHRIFT PER`),
				Rules:    securityRules(),
			},
			{
				Name:     "payment",
				Required: true,
				Begin:    regexp.MustCompile(`(?m)^DIVIDENDENGUTSCHRIFT PER`),
				End:      regexp.MustCompile(`(?m)^NETTO[^\n]*$`),
				Rules: []CaptureRule{
					{
						Name:    "date",
						Pattern: regexp.MustCompile(`DIVIDENDENGUTSCHRIFT PER (?P<date>\d{2}\.\d{2}\.\d{4})`),
						Fields:  map[string]FieldKind{"date": Day},
					},
					{
						Name:    "gross",
						Pattern: regexp.MustCompile(`(?m)^BRUTTO[ \t]+(?P<grosscur>[A-Z]{3})[ \t]+(?P<gross>[\d.,]+)[ \t]*$`),
						Fields:  map[string]FieldKind{"grosscur": Currency, "gross": Number},
					},
					{
						// exchange line of a foreign-currency dividend: the
						// bank's own rate and the converted gross value
						Name:     "forex",
						Optional: true,
						Pattern:  regexp.MustCompile(`(?m)^UMGER\.ZUM DEV\.-KURS[ \t]+(?P<devkurs>[\d.,]+)[ \t]+(?P<basecur>[A-Z]{3})[ \t]+(?P<base>[\d.,]+)[ \t]*$`),
						Fields:   map[string]FieldKind{"devkurs": Number, "basecur": Currency, "base": Number},
					},
					{
						Name:     "taxes",
						Optional: true,
						Repeat:   true,
						Pattern:  regexp.MustCompile(`(?m)^(?:KAPST|SOLZ|KIST|QUST)[^\n]*?(?P<taxcur>[A-Z]{3})[ \t]+(?P<tax>[\d.,]+)(?:[ \t]+[A-Z]{3}[ \t]+[\d.,]+)?[ \t]*$`),
						Fields:   map[string]FieldKind{"taxcur": Currency, "tax": Number},
						OnMatch:  addTax,
					},
					{
						Name:    "net",
						Pattern: regexp.MustCompile(`(?m)^NETTO[^\n]*?(?P<netcur>[A-Z]{3})[ \t]+(?P<net>[\d.,]+)[ \t]*$`),
						Fields:  map[string]FieldKind{"netcur": Currency, "net": Number},
					},
				},
			},
		},
		Build: buildDividend,
	}
}

func buildDividend(ctx *Context) error {
	net := ctx.Amount("netcur", "net")
	gross := ctx.Amount("grosscur", "gross")
	sec, err := securityFromContext(ctx, gross.Currency())
	if err != nil {
		return err
	}

	tx := statements.NewAccountTransaction(statements.AccDividends)
	tx.SetMonetaryAmount(net)
	tx.SetDateTime(ctx.Day("date").Time())
	tx.SetShares(ctx.Quantity("shares"))
	tx.SetSecurity(sec)
	for _, u := range ctx.Units() {
		tx.AddUnit(u)
	}

	switch {
	case gross.Currency() == net.Currency():
		// the gross value stays derivable from net and taxes; the stated
		// BRUTTO only cross-checks the closure
		if derived := tx.GrossValue(); !derived.CloseTo(gross) {
			ctx.Error(fmt.Errorf("%s: %w: statement gross %s, derived %s",
				ctx.Doc().Name, statements.ErrClosure, gross, derived))
		}
	case ctx.Has("devkurs"):
		// keep the bank's own conversion of the foreign gross value
		txGross := ctx.Amount("basecur", "base")
		rate := decimal.New(1, 0).DivRound(ctx.Number("devkurs"), 10)
		u, err := statements.NewForexUnit(statements.UnitGrossValue, txGross, gross, rate)
		if err != nil {
			ctx.Error(fmt.Errorf("%s: %w", ctx.Doc().Name, err))
			break
		}
		tx.AddUnit(u)
		if err := tx.CheckClosure(); err != nil {
			ctx.Error(fmt.Errorf("%s: %w", ctx.Doc().Name, err))
		}
	default:
		ctx.Error(fmt.Errorf("%s: %w: gross value in %s but no exchange rate stated",
			ctx.Doc().Name, statements.ErrClosure, gross.Currency()))
	}

	ctx.Emit(statements.SecurityItem{Security: sec}, statements.TransactionItem{Transaction: tx})
	return nil
}

// tradeType decodes a purchase, subscription or sale note. The verb is the
// literal the statement opens the order line with: KAUF, BEZUG or VERKAUF.
func tradeType(name, verb string, kind statements.PortfolioTxKind) DocType {
	return DocType{
		Name:  name,
		Match: regexp.MustCompile(`(?m)^[ \t]*` + verb + ` AM `),
		Blocks: []BlockDef{
			{
				Name:     "order",
				Required: true,
				Begin:    regexp.MustCompile(`(?m)^[ \t]*` + verb + ` AM `),
				End:      regexp.MustCompile(`(?m)^KURS [\d.,]+`),
				Rules: append([]CaptureRule{
					{
						Name:    "datetime",
						Pattern: regexp.MustCompile(verb + ` AM (?P<date>\d{2}\.\d{2}\.\d{4})(?:[ \t]+UM (?P<time>\d{2}:\d{2}:\d{2}))?`),
						Fields:  map[string]FieldKind{"date": Day, "time": Clock},
					},
				}, securityRules()...),
			},
			{
				Name:     "amounts",
				Required: true,
				Begin:    regexp.MustCompile(`(?m)^KURSWERT`),
				End:      regexp.MustCompile(`(?m)^(?:zulasten|zugunsten)[^\n]*$`),
				Rules: []CaptureRule{
					{
						Name:    "kurswert",
						Pattern: regexp.MustCompile(`(?m)^KURSWERT[ \t]+(?P<grosscur>[A-Z]{3})[ \t]+(?P<gross>[\d.,]+)[ \t]*$`),
						Fields:  map[string]FieldKind{"grosscur": Currency, "gross": Number},
					},
					{
						Name:     "fees",
						Optional: true,
						Repeat:   true,
						Pattern:  regexp.MustCompile(`(?m)^(?:GRUNDGEBUEHR|PROVISION|HANDELSENTGELT|TRANSAKTIONSENTGELT|BONIFIKATION)[ \t]+(?P<feecur>[A-Z]{3})[ \t]+(?P<fee>[\d.,]+)[ \t]*$`),
						Fields:   map[string]FieldKind{"feecur": Currency, "fee": Number},
						OnMatch:  addFee,
					},
					{
						Name:     "taxes",
						Optional: true,
						Repeat:   true,
						Pattern:  regexp.MustCompile(`(?m)^(?:KAPST|SOLZ|KIST)[ \t]+(?P<taxcur>[A-Z]{3})[ \t]+(?P<tax>[\d.,]+)[ \t]*$`),
						Fields:   map[string]FieldKind{"taxcur": Currency, "tax": Number},
						OnMatch:  addTax,
					},
					{
						Name:    "total",
						Pattern: regexp.MustCompile(`(?m)^(?:zulasten|zugunsten) Konto-Nr\.[ \t]*\d+[ \t]+(?P<totalcur>[A-Z]{3})[ \t]+(?P<total>[\d.,]+)[ \t]*$`),
						Fields:  map[string]FieldKind{"totalcur": Currency, "total": Number},
					},
				},
			},
		},
		Build: buildTrade(kind),
	}
}

func buildTrade(kind statements.PortfolioTxKind) Action {
	return func(ctx *Context) error {
		total := ctx.Amount("totalcur", "total")
		gross := ctx.Amount("grosscur", "gross")
		sec, err := securityFromContext(ctx, gross.Currency())
		if err != nil {
			return err
		}

		entry := statements.NewBuySellEntry(kind)
		entry.SetMonetaryAmount(total)
		entry.SetDateTime(ctx.DateTime("date", "time"))
		entry.SetShares(ctx.Quantity("shares"))
		entry.SetSecurity(sec)
		for _, u := range ctx.Units() {
			entry.AddUnit(u)
		}

		if derived := entry.PortfolioTransaction().GrossValue(); !derived.CloseTo(gross) {
			ctx.Error(fmt.Errorf("%s: %w: statement gross %s, derived %s",
				ctx.Doc().Name, statements.ErrClosure, gross, derived))
		}

		ctx.Emit(statements.SecurityItem{Security: sec}, statements.BuySellEntryItem{Entry: entry})
		return nil
	}
}

// taxCorrectionType decodes the retroactive loss-allocation notice, which
// books either a tax refund or an additional tax charge against the
// account, with no security involved.
func taxCorrectionType() DocType {
	return DocType{
		Name:  "taxcorrection",
		Match: regexp.MustCompile(`(?m)^NACHTRAEGLICHE VERLUSTVERRECHNUNG`),
		Blocks: []BlockDef{
			{
				Name:     "correction",
				Required: true,
				Begin:    regexp.MustCompile(`(?m)^NACHTRAEGLICHE VERLUSTVERRECHNUNG`),
				Rules: []CaptureRule{
					{
						Name:    "date",
						Pattern: regexp.MustCompile(`BERECHNUNG PER (?P<date>\d{2}\.\d{2}\.\d{4})`),
						Fields:  map[string]FieldKind{"date": Day},
					},
					{
						Name:    "amount",
						Pattern: regexp.MustCompile(`(?m)^(?P<direction>ERSTATTUNG|BELASTUNG)[ \t]+(?P<cur>[A-Z]{3})[ \t]+(?P<amount>[\d.,]+)[ \t]*$`),
						Fields:  map[string]FieldKind{"direction": Text, "cur": Currency, "amount": Number},
					},
				},
			},
		},
		Build: buildTaxCorrection,
	}
}

func buildTaxCorrection(ctx *Context) error {
	kind := statements.AccTaxRefund
	if ctx.Text("direction") == "BELASTUNG" {
		kind = statements.AccTaxes
	}
	tx := statements.NewAccountTransaction(kind)
	tx.SetMonetaryAmount(ctx.Amount("cur", "amount"))
	tx.SetDateTime(ctx.Day("date").Time())
	ctx.Emit(statements.TransactionItem{Transaction: tx})
	return nil
}
