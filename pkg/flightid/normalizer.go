package flightid

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Single-letter cabin codes used inside flight identities
const (
	CabinEconomy        = "E"
	CabinBusiness       = "B"
	CabinFirst          = "F"
	CabinPremiumEconomy = "P"
)

// dateLayouts are tried in order; the first layout that parses wins.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
	"02/01/2006",
}

var tzSuffix = regexp.MustCompile(`(?:Z|[+-]\d{2}:?\d{2})$`)

// ParseError is returned when a date string matches none of the known layouts
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date: %q", e.Input)
}

// Normalizer collapses provider-specific spellings of airline and cabin
// values into canonical tokens. It is safe for concurrent use.
type Normalizer struct {
	airlineAliases map[string]string
	cabinCodes     map[string]string
}

// NewNormalizer creates a normalizer over a private copy of the tables
func NewNormalizer(tables Tables) *Normalizer {
	return &Normalizer{
		airlineAliases: copyTable(tables.AirlineAliases),
		cabinCodes:     copyTable(tables.CabinCodes),
	}
}

// AirlineCode upper-cases, trims and resolves aliases. Unknown codes pass through.
func (n *Normalizer) AirlineCode(code string) string {
	code = normalizeKey(code)
	if code == "" {
		return ""
	}
	if canonical, ok := n.airlineAliases[code]; ok {
		return canonical
	}
	return code
}

// CabinCode maps a cabin label to E, B, F or P. Unknown labels are economy.
func (n *Normalizer) CabinCode(cabinType string) string {
	label := normalizeKey(cabinType)
	if label == "" {
		return CabinEconomy
	}
	if code, ok := n.cabinCodes[label]; ok {
		return code
	}
	return CabinEconomy
}

// NormalizeDate converts a date or date-time string to YYYYMMDD.
func NormalizeDate(dateStr string) (string, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return "", &ParseError{Input: dateStr}
	}

	// Offsets only make sense after a time part; "2025-12-15" must keep its "-15".
	if strings.ContainsAny(s, "T ") {
		s = strings.TrimSpace(tzSuffix.ReplaceAllString(s, ""))
	}

	candidate := s
	if !strings.ContainsAny(s, "T ") && len(s) > 10 {
		candidate = s[:10]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("20060102"), nil
		}
	}

	if len(s) == 8 && isDigits(s) {
		if _, err := time.Parse("20060102", s); err == nil {
			return s, nil
		}
	}

	return "", &ParseError{Input: dateStr}
}

// CleanFlightNumber strips a leading airline-code prefix and zero-pads
// purely numeric results to 4 digits.
//
//	CleanFlightNumber("A16700", "A1") == "6700"
//	CleanFlightNumber("ME4150", "MEH") == "4150"
//	CleanFlightNumber("024", "IV") == "0024"
func CleanFlightNumber(flightNumber, airlineCode string) string {
	if flightNumber == "" || airlineCode == "" {
		return flightNumber
	}

	flight := strings.ToUpper(strings.TrimSpace(flightNumber))
	airline := strings.ToUpper(strings.TrimSpace(airlineCode))

	if strings.HasPrefix(flight, airline) {
		if rest := flight[len(airline):]; startsWithDigit(rest) {
			flight = rest
		}
	} else if len(airline) >= 3 && len(flight) > 2 && flight[:2] == airline[:2] {
		if rest := flight[2:]; startsWithDigit(rest) {
			flight = rest
		}
	}

	if isDigits(flight) && len(flight) < 4 {
		flight = strings.Repeat("0", 4-len(flight)) + flight
	}
	return flight
}

// InferAirlineCode recovers an airline code from a flight number such as
// "W5123", "IR100" or "I35753" when the provider sent no explicit code.
// It returns "" when the prefix is not a 2-3 character alphanumeric run
// holding at least one letter.
func InferAirlineCode(flightNumber string) string {
	s := strings.ToUpper(strings.TrimSpace(flightNumber))
	lastLetter := strings.LastIndexFunc(s, func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	})
	if lastLetter < 0 || lastLetter > 2 {
		return ""
	}
	for _, r := range s[:lastLetter] {
		if !isAlnum(r) {
			return ""
		}
	}
	if !isDigits(s[lastLetter+1:]) {
		return ""
	}

	n := lastLetter + 1
	if n == 1 {
		// single letter pairs with its first digit: W5, A1, I3
		n = 2
	}
	if n >= len(s) {
		return ""
	}
	return s[:n]
}

// StripLeadingZeros gives the flight-number segment used inside identities
func StripLeadingZeros(flightNumber string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(flightNumber), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
