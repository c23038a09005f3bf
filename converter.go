package statements

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Conversion failure kinds. Both are surfaced to the user and never
// defaulted to a fallback rate; retrying after refreshing rate data is the
// caller's policy.
var (
	// ErrNoRate reports that the series for the pair exists but carries no
	// quote on the requested day.
	ErrNoRate = errors.New("no exchange rate available")
	// ErrNoSeriesForPair reports that the rate source knows no series at
	// all for the currency pair.
	ErrNoSeriesForPair = errors.New("no exchange rate series for currency pair")
)

// identityRate is the scaled value of an exchange rate between a currency
// and itself.
var identityRate = decimal.New(1, 0)

// CurrencyConverter converts amounts into one fixed term currency using
// historical rates from a RateSource.
//
// Series are fetched at most once per base currency and memoized for the
// lifetime of the instance. The memo is not safe for concurrent use;
// confine a converter to one goroutine or guard it externally.
type CurrencyConverter struct {
	source RateSource
	term   string
	cache  map[string]*ExchangeRateTimeSeries
}

// NewCurrencyConverter returns a converter bound to the given term currency.
func NewCurrencyConverter(source RateSource, termCurrency string) *CurrencyConverter {
	return &CurrencyConverter{
		source: source,
		term:   termCurrency,
		cache:  make(map[string]*ExchangeRateTimeSeries),
	}
}

// TermCurrency returns the currency all conversions resolve into.
func (c *CurrencyConverter) TermCurrency() string { return c.term }

// Convert returns amount expressed in the term currency at the rate of the
// given day.
//
// An amount already in the term currency is returned unchanged, and a zero
// amount converts to zero without consulting any series, so documents full
// of zero-valued foreign lines never fail on missing rates.
func (c *CurrencyConverter) Convert(on Date, amount Money) (Money, error) {
	if amount.Currency() == c.term {
		return amount, nil
	}
	if amount.IsZero() {
		return Cents(0, c.term), nil
	}
	rate, err := c.RateAt(on, amount.Currency())
	if err != nil {
		return Money{}, err
	}
	// the rate applies to major units; M factorizes the product back into
	// the term currency's own minor unit, rounding half away from zero
	return M(amount.Decimal().Mul(rate.Value), c.term), nil
}

// RateAt returns the exchange rate from the given currency into the term
// currency on that day. The term currency itself yields the identity rate
// without any lookup.
func (c *CurrencyConverter) RateAt(on Date, currencyCode string) (ExchangeRate, error) {
	if currencyCode == c.term {
		return ExchangeRate{Day: on, Value: identityRate}, nil
	}
	series, ok := c.cache[currencyCode]
	if !ok {
		series, ok = c.source.Series(currencyCode, c.term)
		if !ok {
			return ExchangeRate{}, fmt.Errorf("%w: %s/%s", ErrNoSeriesForPair, currencyCode, c.term)
		}
		c.cache[currencyCode] = series
	}
	rate, ok := series.LookupRate(on)
	if !ok {
		return ExchangeRate{}, fmt.Errorf("%w: %s/%s on %s", ErrNoRate, currencyCode, c.term, on)
	}
	return rate, nil
}

// With returns a converter bound to the given term currency, sharing the
// rate source but not the memoized series. Rebinding to the current term
// currency returns the same instance.
func (c *CurrencyConverter) With(termCurrency string) *CurrencyConverter {
	if termCurrency == c.term {
		return c
	}
	return NewCurrencyConverter(c.source, termCurrency)
}
