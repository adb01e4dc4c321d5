package subsync

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate indicates a date argument is not a valid DDMMYYYY value.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidRange indicates the range end date precedes the start date.
var ErrInvalidRange = errors.New("invalid date range")

const dateLayout = "02012006"

// ParseDate parses a DDMMYYYY date string.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want DDMMYYYY)", ErrInvalidDate, v)
	}
	return t, nil
}

// FormatDate renders t in DDMMYYYY form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Today returns the current date in DDMMYYYY form.
func Today() string {
	return time.Now().Format(dateLayout)
}
