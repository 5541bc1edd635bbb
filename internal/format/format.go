// Package format holds pure normalization and display helpers shared by
// the services and the HTTP layer.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NormalizeCounty cleans a raw county input:
//  1. trim whitespace
//  2. drop a trailing "county" token (case-insensitive) when it follows
//     another word; a lone "county" is treated as the name itself
//  3. title-case the remaining words
//
// "king county" -> "King", "KING COUNTY" -> "King", "pierce" -> "Pierce",
// "county" -> "County". Total function: empty input yields "".
func NormalizeCounty(county string) string {
	s := strings.TrimSpace(county)
	if s == "" {
		return ""
	}

	fields := strings.Fields(s)
	if n := len(fields); n > 1 && strings.EqualFold(fields[n-1], "county") {
		fields = fields[:n-1]
	}

	for i, w := range fields {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as USD: 700 -> "$700",
// 1250.50 -> "$1,250.50".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) {
		return "$0"
	}
	if amount == math.Trunc(amount) {
		return usd.Sprintf("$%d", int64(amount))
	}
	return usd.Sprintf("$%.2f", amount)
}

// FormatDate renders a date as "Jan 15, 2025". Zero time yields "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// DaysUntil returns whole days from today until the given date, both
// normalized to midnight. Negative for past dates.
func DaysUntil(future time.Time, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := time.Date(future.Year(), future.Month(), future.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Ceil(target.Sub(today).Hours() / 24))
}

// IsWithinDays reports whether the date falls between today and today+days.
func IsWithinDays(date time.Time, days int, now time.Time) bool {
	d := DaysUntil(date, now)
	return d >= 0 && d <= days
}

// Urgency levels for expiration-style alerts.
const (
	UrgencyCritical = "critical"
	UrgencyWarning  = "warning"
	UrgencyNormal   = "normal"
)

// UrgencyLevel buckets days-until-expiration into an alert level.
func UrgencyLevel(daysUntil int) string {
	switch {
	case daysUntil <= 7:
		return UrgencyCritical
	case daysUntil <= 30:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// FormatPercent renders an integer-rounded percentage, e.g. "67%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}
