package statements

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func usdEur(rates map[string]string) *RateSet {
	series := NewTimeSeries("USD", "EUR")
	for day, rate := range rates {
		d, err := ParseDate(day)
		if err != nil {
			panic(err)
		}
		series.Append(d, decimal.RequireFromString(rate))
	}
	return NewRateSet().Add(series)
}

func TestConvert(t *testing.T) {
	source := usdEur(map[string]string{"2015-05-14": "0.9055559255"})
	conv := NewCurrencyConverter(source, "EUR")
	on := NewDate(2015, 5, 14)

	got, err := conv.Convert(on, M(180.00, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if want := M(163.00, "EUR"); !got.Equal(want) {
		t.Errorf("Convert(180.00 USD) = %s, want %s", got, want)
	}
}

func TestConvertIdentity(t *testing.T) {
	// an amount already in the term currency never consults the source
	conv := NewCurrencyConverter(NewRateSet(), "EUR")
	amount := M(42.42, "EUR")
	got, err := conv.Convert(NewDate(2015, 5, 14), amount)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(amount) {
		t.Errorf("Convert(%s) = %s", amount, got)
	}
}

func TestConvertZeroAmount(t *testing.T) {
	// zero converts to zero even with no series for the pair
	conv := NewCurrencyConverter(NewRateSet(), "EUR")
	got, err := conv.Convert(NewDate(2015, 5, 14), Cents(0, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(Cents(0, "EUR")) {
		t.Errorf("Convert(0 USD) = %s, want 0 EUR", got)
	}
}

func TestConvertNoSeriesForPair(t *testing.T) {
	conv := NewCurrencyConverter(NewRateSet(), "EUR")
	_, err := conv.Convert(NewDate(2015, 5, 14), M(1, "USD"))
	if !errors.Is(err, ErrNoSeriesForPair) {
		t.Errorf("err = %v, want ErrNoSeriesForPair", err)
	}
}

func TestConvertNoRateOnDay(t *testing.T) {
	// the pair is known but the requested day carries no quote; rates are
	// never interpolated from neighboring days
	source := usdEur(map[string]string{"2015-05-14": "0.9"})
	conv := NewCurrencyConverter(source, "EUR")
	_, err := conv.Convert(NewDate(2015, 5, 15), M(1, "USD"))
	if !errors.Is(err, ErrNoRate) {
		t.Errorf("err = %v, want ErrNoRate", err)
	}
}

func TestConvertRoundsHalfAwayFromZero(t *testing.T) {
	source := usdEur(map[string]string{"2015-05-14": "0.5"})
	conv := NewCurrencyConverter(source, "EUR")
	on := NewDate(2015, 5, 14)

	got, err := conv.Convert(on, Cents(1, "USD")) // exactly half a cent
	if err != nil {
		t.Fatal(err)
	}
	if got.MinorUnits() != 1 {
		t.Errorf("0.5 minor units rounded to %d, want 1", got.MinorUnits())
	}
	got, err = conv.Convert(on, Cents(-1, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if got.MinorUnits() != -1 {
		t.Errorf("-0.5 minor units rounded to %d, want -1", got.MinorUnits())
	}
}

func TestConvertAcrossMinorUnitFractions(t *testing.T) {
	// USD counts in hundredths, JPY in whole yen; the rate binds major
	// units, so the minor-unit scales must not leak into each other
	series := NewTimeSeries("USD", "JPY")
	on := NewDate(2015, 5, 14)
	series.Append(on, decimal.RequireFromString("150"))
	conv := NewCurrencyConverter(NewRateSet().Add(series), "JPY")

	got, err := conv.Convert(on, M(1.00, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if want := M(150, "JPY"); !got.Equal(want) {
		t.Errorf("Convert(1.00 USD) = %s, want %s", got, want)
	}

	back := NewTimeSeries("JPY", "EUR")
	back.Append(on, decimal.RequireFromString("0.0061"))
	eur := NewCurrencyConverter(NewRateSet().Add(back), "EUR")
	got, err = eur.Convert(on, M(1000, "JPY"))
	if err != nil {
		t.Fatal(err)
	}
	if want := M(6.10, "EUR"); !got.Equal(want) {
		t.Errorf("Convert(1000 JPY) = %s, want %s", got, want)
	}
}

func TestRateAtTermCurrency(t *testing.T) {
	conv := NewCurrencyConverter(NewRateSet(), "EUR")
	rate, err := conv.RateAt(NewDate(2015, 5, 14), "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Value.Equal(decimal.New(1, 0)) {
		t.Errorf("identity rate = %s, want 1", rate.Value)
	}
}

// countingSource counts series fetches to observe the converter's memo.
type countingSource struct {
	inner RateSource
	calls int
}

func (c *countingSource) Series(base, term string) (*ExchangeRateTimeSeries, bool) {
	c.calls++
	return c.inner.Series(base, term)
}

func TestConverterMemoizesSeries(t *testing.T) {
	source := &countingSource{inner: usdEur(map[string]string{"2015-05-14": "0.9"})}
	conv := NewCurrencyConverter(source, "EUR")
	on := NewDate(2015, 5, 14)

	for i := 0; i < 3; i++ {
		if _, err := conv.Convert(on, M(1, "USD")); err != nil {
			t.Fatal(err)
		}
	}
	if source.calls != 1 {
		t.Errorf("source consulted %d times, want 1", source.calls)
	}
}

func TestConverterWith(t *testing.T) {
	conv := NewCurrencyConverter(NewRateSet(), "EUR")
	if conv.With("EUR") != conv {
		t.Error("rebinding to the same term currency must return the same instance")
	}
	usd := conv.With("USD")
	if usd == conv {
		t.Error("rebinding to another term currency must return a fresh converter")
	}
	if usd.TermCurrency() != "USD" {
		t.Errorf("TermCurrency = %s, want USD", usd.TermCurrency())
	}
}
