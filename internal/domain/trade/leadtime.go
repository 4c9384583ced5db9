package trade

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lead-time configuration, in calendar days.
const (
	// DefaultLeadDays applies to unrecognized or absent negotiations
	DefaultLeadDays = 7

	// AdditionsExtraDays is added once when an item has any additions.
	// Currently zero: the branch is kept as configured, not removed.
	AdditionsExtraDays = 0

	// QuoteValidityDays is the window between promised delivery and
	// quotation expiry
	QuoteValidityDays = 30
)

// negotiationLeadDays maps normalized negotiation categories to their
// lead time. Keys are uppercase with diacritics stripped.
var negotiationLeadDays = map[string]int{
	"MUESTRA":             28,
	"MUESTRAS":            28,
	"MUESTRA FISICA":      28,
	"CONTRAMUESTRA":       28,
	"PRODUCCION":          15,
	"PRODUCCION NACIONAL": 15,
	"REPOSICION":          10,
}

var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeNegotiation canonicalizes a negotiation tag: trimmed,
// uppercased, diacritics removed, inner whitespace collapsed.
func NormalizeNegotiation(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if stripped, _, err := transform.String(stripDiacritics, s); err == nil {
		s = stripped
	}
	return strings.ToUpper(s)
}

// LeadDays returns the item's lead time in calendar days
func LeadDays(item OrderItem) int {
	days, ok := negotiationLeadDays[NormalizeNegotiation(item.Negotiation)]
	if !ok {
		days = DefaultLeadDays
	}
	if item.Additions > 0 {
		days += AdditionsExtraDays
	}
	return days
}

// MaxLeadDays returns the longest lead time over the items, 0 for none
func MaxLeadDays(items []OrderItem) int {
	maxDays := 0
	for _, item := range items {
		if d := LeadDays(item); d > maxDays {
			maxDays = d
		}
	}
	return maxDays
}

// DeliveryDate derives the promised delivery date: from plus the longest
// item lead time, in local calendar days. ok is false when the items
// produce no lead time at all.
func DeliveryDate(items []OrderItem, from time.Time) (time.Time, bool) {
	days := MaxLeadDays(items)
	if days == 0 {
		return time.Time{}, false
	}
	return atMidnight(from).AddDate(0, 0, days), true
}

// ExpiryDate derives the quotation expiry: delivery plus extraDays
// calendar days.
func ExpiryDate(delivery time.Time, extraDays int) time.Time {
	return atMidnight(delivery).AddDate(0, 0, extraDays)
}

// FormatDate renders a schedule date without time-of-day
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
