// Package ecb loads daily euro foreign exchange reference rates, as
// published by the European Central Bank, into exchange-rate time series.
//
// The rates are served by the frankfurter.app JSON API. A missing pair or a
// failing endpoint is reported to the converter as an absent series, which
// turns it into a conversion error only when the pair is actually needed.
package ecb

import (
	"fmt"
	"log"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/statements"
	"github.com/shopspring/decimal"
)

const defaultAddr = "https://api.frankfurter.app"

// Client fetches rate series over a fixed date window and memoizes them per
// currency pair. It implements statements.RateSource.
type Client struct {
	addr     string
	client   *http.Client
	from, to statements.Date
	series   map[string]*statements.ExchangeRateTimeSeries
}

// NewClient returns a client serving rates quoted between from and to,
// inclusive. Responses are cached on disk and expire daily.
func NewClient(from, to statements.Date) *Client {
	return newClient(defaultAddr, newDailyCachingClient(), from, to)
}

func newClient(addr string, client *http.Client, from, to statements.Date) *Client {
	return &Client{
		addr:   addr,
		client: client,
		from:   from,
		to:     to,
		series: make(map[string]*statements.ExchangeRateTimeSeries),
	}
}

// Series implements statements.RateSource. The fetch failure mode is absence:
// the error is logged here and the converter reports the missing pair.
func (c *Client) Series(base, term string) (*statements.ExchangeRateTimeSeries, bool) {
	key := base + term
	if s, ok := c.series[key]; ok {
		return s, true
	}
	s, err := c.fetch(base, term)
	if err != nil {
		log.Printf("ecb: no series for %s/%s: %v", base, term, err)
		return nil, false
	}
	c.series[key] = s
	return s, true
}

// fetch queries the rate endpoint for one pair over the client's window.
//
//	https://api.frankfurter.app/2015-01-01..2015-05-14?from=USD&to=EUR
//	{"base":"USD","rates":{"2015-05-14":{"EUR":0.90556}}}
func (c *Client) fetch(base, term string) (*statements.ExchangeRateTimeSeries, error) {
	addr := fmt.Sprintf("%s/%s..%s?from=%s&to=%s", c.addr, c.from, c.to, base, term)
	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return nil, err
	}
	return parseSeries(jobj, base, term)
}

// parseSeries reads the "rates" object of the payload: one member per quoted
// day, each holding the rate keyed by term currency. Days without a member
// (weekends, ECB holidays) are simply absent from the series.
func parseSeries(jobj any, base, term string) (*statements.ExchangeRateTimeSeries, error) {
	jval, err := jsonpath.Get("$.rates", jobj)
	if err != nil {
		return nil, fmt.Errorf("no rates in payload: %w", err)
	}
	days, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rates is not an object: %v", jval)
	}

	series := statements.NewTimeSeries(base, term)
	for day, quotes := range days {
		on, err := statements.ParseDate(day)
		if err != nil {
			return nil, err
		}
		jrate, err := jsonpath.Get("$."+term, quotes)
		if err != nil {
			return nil, fmt.Errorf("no %s quote on %s: %w", term, day, err)
		}
		rate, ok := jrate.(float64)
		if !ok {
			return nil, fmt.Errorf("quote on %s is not a number: %v", day, jrate)
		}
		series.Append(on, decimal.NewFromFloat(rate))
	}
	return series, nil
}
