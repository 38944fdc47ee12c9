package flightid

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

const (
	charterFlag = "R"
	systemFlag  = "H"

	defaultBookingClass = "B"
	hashLength          = 6
	priceUnit           = 10000
	priceWidth          = 6
)

// FlightKey identifies one physical departure.
// DepartureDate may be any layout NormalizeDate accepts; DepartureTime is HH:MM or empty.
type FlightKey struct {
	Origin        string
	Destination   string
	DepartureDate string
	AirlineCode   string
	FlightNumber  string
	DepartureTime string
}

// OfferKey identifies one sellable price/cabin combination of a flight
type OfferKey struct {
	FlightKey
	BookingClass string
	CabinType    string
	IsCharter    bool
	AdultPrice   int64
}

// Generator builds base and full flight identities
type Generator struct {
	normalizer *Normalizer
}

// NewGenerator creates a generator that normalizes through n
func NewGenerator(n *Normalizer) *Generator {
	return &Generator{normalizer: n}
}

// Normalizer returns the normalizer the generator was built with
func (g *Generator) Normalizer() *Normalizer {
	return g.normalizer
}

type normalizedKey struct {
	origin      string
	destination string
	date        string
	airline     string
	flight      string
	clock       string
}

func (g *Generator) normalize(key FlightKey) (normalizedKey, error) {
	date, err := NormalizeDate(key.DepartureDate)
	if err != nil {
		return normalizedKey{}, err
	}
	return normalizedKey{
		origin:      normalizeKey(key.Origin),
		destination: normalizeKey(key.Destination),
		date:        date,
		airline:     g.normalizer.AirlineCode(key.AirlineCode),
		flight:      StripLeadingZeros(key.FlightNumber),
		clock:       strings.TrimSpace(key.DepartureTime),
	}, nil
}

// BaseID returns the provider-independent identity of a physical flight:
// ORIGIN DEST YYYYMMDD AIRLINE FLIGHT HHMM, e.g. THRMHD20251215TA81881300.
func (g *Generator) BaseID(key FlightKey) (string, error) {
	k, err := g.normalize(key)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(k.origin)
	b.WriteString(k.destination)
	b.WriteString(k.date)
	b.WriteString(k.airline)
	b.WriteString(k.flight)
	b.WriteString(strings.ReplaceAll(k.clock, ":", ""))
	return b.String(), nil
}

// FullID returns the identity of one sellable offer:
// ORIGIN DEST YYYYMMDD FLAG AIRLINE FLIGHT CLASS CABIN HASH PRICE.
func (g *Generator) FullID(offer OfferKey) (string, error) {
	k, err := g.normalize(offer.FlightKey)
	if err != nil {
		return "", err
	}

	flag := systemFlag
	if offer.IsCharter {
		flag = charterFlag
	}

	bookingClass := normalizeKey(offer.BookingClass)
	if bookingClass == "" {
		bookingClass = defaultBookingClass
	}

	var b strings.Builder
	b.WriteString(k.origin)
	b.WriteString(k.destination)
	b.WriteString(k.date)
	b.WriteString(flag)
	b.WriteString(k.airline)
	b.WriteString(k.flight)
	b.WriteString(bookingClass)
	b.WriteString(g.normalizer.CabinCode(offer.CabinType))
	b.WriteString(Hash(k.airline, k.flight, k.origin, k.destination, k.date, k.clock))
	b.WriteString(FormatPrice(offer.AdultPrice))
	return b.String(), nil
}

// Hash derives a 6-digit tie-breaker from the flight fields. It is not a
// security primitive; collisions are tolerated.
func Hash(airlineCode, flightNumber, origin, destination, date, departureTime string) string {
	sum := md5.Sum([]byte(airlineCode + flightNumber + origin + destination + date + departureTime))

	digits := make([]byte, 0, hashLength)
	for _, c := range []byte(hex.EncodeToString(sum[:])) {
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
			if len(digits) == hashLength {
				break
			}
		}
	}
	for len(digits) < hashLength {
		digits = append(digits, '0')
	}
	return string(digits)
}

// FormatPrice converts an IRR amount to zero-padded 10k-IRR units.
// Sub-10k precision is discarded; negative amounts format as zero.
func FormatPrice(price int64) string {
	if price < 0 {
		price = 0
	}
	s := strconv.FormatInt(price/priceUnit, 10)
	if len(s) < priceWidth {
		s = strings.Repeat("0", priceWidth-len(s)) + s
	}
	return s
}
