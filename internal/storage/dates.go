package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
)

var dateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"01/02/2006",
}

// ParseDate parses a calendar date in any of the accepted layouts and
// normalizes it to midnight UTC
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return calendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", models.ErrInvalidTimestamp, value)
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
