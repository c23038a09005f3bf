package statements

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// wknRegex checks for the German Wertpapierkennnummer format: 6 alphanumeric characters.
var wknRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	// 1. Length validation
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}

	// 2. Format validation
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// 3. Convert letters to numbers for check digit calculation
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// 4. Apply a variation of the Luhn algorithm
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))

		if isSecond {
			digit *= 2
		}

		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	// 5. Validate the check digit
	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))

	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}

	return nil
}

// ValidateWKN checks if a string conforms to the WKN format.
func ValidateWKN(wkn string) error {
	if len(wkn) != 6 {
		return fmt.Errorf("invalid length: must be 6 characters, got %d", len(wkn))
	}
	if !wknRegex.MatchString(wkn) {
		return fmt.Errorf("invalid format: must be 6 uppercase alphanumeric characters")
	}
	return nil
}

// ValidateCurrency checks if a string is a 3-letter ISO-4217 currency code.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency format: must be 3 uppercase letters, got %q", code)
	}
	return nil
}

// Security represents an instrument named by a statement: stock, ETF, fund.
//
// A statement rarely prints every identifier, so ISIN and WKN are optional;
// the name is always present. The currency is the currency the instrument
// is quoted in, which may differ from the currency of the booking.
type Security struct {
	id       uuid.UUID
	isin     string
	wkn      string
	name     string
	currency string
}

// NewSecurity returns a fresh security with the given name and quote currency.
func NewSecurity(name, currency string) *Security {
	return &Security{id: uuid.New(), name: name, currency: currency}
}

func (s *Security) ID() uuid.UUID    { return s.id }
func (s *Security) ISIN() string     { return s.isin }
func (s *Security) WKN() string      { return s.wkn }
func (s *Security) Name() string     { return s.name }
func (s *Security) Currency() string { return s.currency }

// SetISIN records the ISIN after checksum validation.
func (s *Security) SetISIN(isin string) error {
	if err := ValidateISIN(isin); err != nil {
		return fmt.Errorf("invalid ISIN %q: %w", isin, err)
	}
	s.isin = isin
	return nil
}

// SetWKN records the WKN after format validation.
func (s *Security) SetWKN(wkn string) error {
	if err := ValidateWKN(wkn); err != nil {
		return fmt.Errorf("invalid WKN %q: %w", wkn, err)
	}
	s.wkn = wkn
	return nil
}

// SetName replaces the security name.
func (s *Security) SetName(name string) { s.name = name }

func (s *Security) String() string {
	switch {
	case s.isin != "":
		return fmt.Sprintf("%s (%s)", s.name, s.isin)
	case s.wkn != "":
		return fmt.Sprintf("%s (%s)", s.name, s.wkn)
	default:
		return s.name
	}
}

// Catalog is the caller-owned collection of known securities that an
// extraction pass resolves against. It is not safe for concurrent
// mutation; callers running documents in parallel must serialize access.
type Catalog struct {
	securities []*Security
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog { return &Catalog{} }

// Add inserts a security into the catalog.
func (c *Catalog) Add(s *Security) { c.securities = append(c.securities, s) }

// Len returns the number of securities in the catalog.
func (c *Catalog) Len() int { return len(c.securities) }

// Securities returns the catalog content in insertion order.
func (c *Catalog) Securities() []*Security {
	out := make([]*Security, len(c.securities))
	copy(out, c.securities)
	return out
}

// Match finds the catalog entry the extracted security refers to:
// ISIN exact match first, then WKN, then name. First hit wins.
// A nil result means the extracted security is a new instrument.
func (c *Catalog) Match(extracted *Security) *Security {
	if extracted.isin != "" {
		for _, s := range c.securities {
			if s.isin == extracted.isin {
				return s
			}
		}
	}
	if extracted.wkn != "" {
		for _, s := range c.securities {
			if s.wkn == extracted.wkn {
				return s
			}
		}
	}
	for _, s := range c.securities {
		if s.name == extracted.name {
			return s
		}
	}
	return nil
}
