package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCounty(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"king county", "King"},
		{"KING COUNTY", "King"},
		{"King", "King"},
		{"pierce", "Pierce"},
		{"  snohomish  ", "Snohomish"},
		{"walla walla county", "Walla Walla"},
		{"county", "County"},
		{"COUNTY", "County"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeCounty(c.in), "input %q", c.in)
	}
}

func TestNormalizeCountyIdempotent(t *testing.T) {
	inputs := []string{"king county", "King", "walla walla county", "PIERCE", "county", ""}
	for _, in := range inputs {
		once := NormalizeCounty(in)
		assert.Equal(t, once, NormalizeCounty(once), "input %q", in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$700", FormatCurrency(700))
	assert.Equal(t, "$1,250.50", FormatCurrency(1250.50))
	assert.Equal(t, "$0", FormatCurrency(0))
	assert.Equal(t, "$12,000", FormatCurrency(12000))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Jan 15, 2025", FormatDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 1, DaysUntil(time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 30, DaysUntil(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -1, DaysUntil(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), now))
}

func TestIsWithinDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsWithinDays(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 30, now))
	assert.True(t, IsWithinDays(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 30, now))
	assert.False(t, IsWithinDays(time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), 30, now))
	assert.False(t, IsWithinDays(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), 30, now))
}

func TestUrgencyLevel(t *testing.T) {
	assert.Equal(t, UrgencyCritical, UrgencyLevel(0))
	assert.Equal(t, UrgencyCritical, UrgencyLevel(7))
	assert.Equal(t, UrgencyWarning, UrgencyLevel(8))
	assert.Equal(t, UrgencyWarning, UrgencyLevel(30))
	assert.Equal(t, UrgencyNormal, UrgencyLevel(31))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "67%", FormatPercent(2.0/3.0))
	assert.Equal(t, "0%", FormatPercent(0))
	assert.Equal(t, "100%", FormatPercent(1))
}
