package statements

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the price of one unit of the base currency expressed in
// the term currency on a given day.
type ExchangeRate struct {
	Day   Date
	Value decimal.Decimal
}

// ExchangeRateTimeSeries stores a chronological series of exchange rates
// for one (base, term) currency pair. It ensures that days are unique and
// the series is always sorted.
type ExchangeRateTimeSeries struct {
	base, term string
	days       []Date
	values     []decimal.Decimal
}

// NewTimeSeries returns an empty series for the given currency pair.
func NewTimeSeries(base, term string) *ExchangeRateTimeSeries {
	return &ExchangeRateTimeSeries{base: base, term: term}
}

// Base returns the base currency of the pair.
func (s *ExchangeRateTimeSeries) Base() string { return s.base }

// Term returns the term currency of the pair.
func (s *ExchangeRateTimeSeries) Term() string { return s.term }

// Len returns the number of rates in the series.
func (s *ExchangeRateTimeSeries) Len() int { return len(s.days) }

// chronological is a private implementation to make this series chronologically sorted.
type chronological struct{ *ExchangeRateTimeSeries }

func (c chronological) Len() int           { return len(c.days) }
func (c chronological) Less(i, j int) bool { return c.days[i].Before(c.days[j]) }
func (c chronological) Swap(i, j int) {
	c.days[i], c.days[j] = c.days[j], c.days[i]
	c.values[i], c.values[j] = c.values[j], c.values[i]
}

// Append adds a rate to the series.
//
// An existing rate at that date is overwritten.
func (s *ExchangeRateTimeSeries) Append(on Date, value decimal.Decimal) *ExchangeRateTimeSeries {
	if i := slices.Index(s.days, on); i >= 0 {
		// Found a rate at that exact same day.
		// We choose to replace, because it will give higher priority to the last data
		s.values[i] = value
		return s
	}
	s.days, s.values = append(s.days, on), append(s.values, value)
	sort.Sort(chronological{s})
	return s
}

// LookupRate returns the rate quoted exactly on that day. A day without a
// quote is reported as absent, never interpolated.
func (s *ExchangeRateTimeSeries) LookupRate(on Date) (ExchangeRate, bool) {
	if i := slices.Index(s.days, on); i >= 0 {
		return ExchangeRate{Day: s.days[i], Value: s.values[i]}, true
	}
	return ExchangeRate{}, false
}

// Rates returns the series content in chronological order.
func (s *ExchangeRateTimeSeries) Rates() []ExchangeRate {
	out := make([]ExchangeRate, len(s.days))
	for i := range s.days {
		out[i] = ExchangeRate{Day: s.days[i], Value: s.values[i]}
	}
	return out
}

// Latest returns the most recent rate in the series.
func (s *ExchangeRateTimeSeries) Latest() (ExchangeRate, bool) {
	last := len(s.days) - 1
	if last < 0 {
		return ExchangeRate{}, false
	}
	return ExchangeRate{Day: s.days[last], Value: s.values[last]}, true
}

// RateSource provides exchange-rate series per currency pair. A missing
// pair is not an error at this boundary; the converter turns it into
// ErrNoSeriesForPair only when the pair is actually needed.
//
// Implementations may perform I/O on Series and are allowed to block.
type RateSource interface {
	Series(base, term string) (*ExchangeRateTimeSeries, bool)
}

// RateSet is an in-memory RateSource.
type RateSet struct {
	series map[string]*ExchangeRateTimeSeries
}

// NewRateSet returns an empty rate collection.
func NewRateSet() *RateSet {
	return &RateSet{series: make(map[string]*ExchangeRateTimeSeries)}
}

// Add registers a series under its currency pair, replacing any previous one.
func (r *RateSet) Add(s *ExchangeRateTimeSeries) *RateSet {
	r.series[s.base+s.term] = s
	return r
}

// Series implements RateSource.
func (r *RateSet) Series(base, term string) (*ExchangeRateTimeSeries, bool) {
	s, ok := r.series[base+term]
	return s, ok
}
