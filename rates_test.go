package statements

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTimeSeriesStaysChronological(t *testing.T) {
	s := NewTimeSeries("USD", "EUR")
	s.Append(NewDate(2015, 5, 14), decimal.RequireFromString("0.90"))
	s.Append(NewDate(2015, 5, 12), decimal.RequireFromString("0.88"))
	s.Append(NewDate(2015, 5, 13), decimal.RequireFromString("0.89"))

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	latest, ok := s.Latest()
	if !ok {
		t.Fatal("Latest on a filled series")
	}
	if latest.Day != NewDate(2015, 5, 14) {
		t.Errorf("Latest day = %s, want 2015-05-14", latest.Day)
	}
	if !latest.Value.Equal(decimal.RequireFromString("0.90")) {
		t.Errorf("Latest value = %s, want 0.90", latest.Value)
	}
}

func TestTimeSeriesAppendReplacesSameDay(t *testing.T) {
	s := NewTimeSeries("USD", "EUR")
	day := NewDate(2015, 5, 14)
	s.Append(day, decimal.RequireFromString("0.90"))
	s.Append(day, decimal.RequireFromString("0.91"))

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want the same day replaced, not duplicated", s.Len())
	}
	rate, ok := s.LookupRate(day)
	if !ok {
		t.Fatal("LookupRate on the replaced day")
	}
	if !rate.Value.Equal(decimal.RequireFromString("0.91")) {
		t.Errorf("rate = %s, want the later value 0.91", rate.Value)
	}
}

func TestTimeSeriesLookupIsExact(t *testing.T) {
	s := NewTimeSeries("USD", "EUR")
	s.Append(NewDate(2015, 5, 14), decimal.RequireFromString("0.90"))

	if _, ok := s.LookupRate(NewDate(2015, 5, 15)); ok {
		t.Error("LookupRate returned a quote for an unquoted day")
	}
}

func TestTimeSeriesEmpty(t *testing.T) {
	s := NewTimeSeries("USD", "EUR")
	if _, ok := s.Latest(); ok {
		t.Error("Latest on an empty series")
	}
	if s.Base() != "USD" || s.Term() != "EUR" {
		t.Errorf("pair = %s/%s", s.Base(), s.Term())
	}
}

func TestRateSet(t *testing.T) {
	set := NewRateSet().Add(NewTimeSeries("USD", "EUR"))
	if _, ok := set.Series("USD", "EUR"); !ok {
		t.Error("registered pair not found")
	}
	if _, ok := set.Series("EUR", "USD"); ok {
		t.Error("a pair is directional, the inverse must not resolve")
	}
}
