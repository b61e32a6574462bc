package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wheelibin/glasshouse/internal/models"
)

// HHMM is a time of day encoded as a 4 digit integer, e.g. 800 = 08:00, 1430 = 14:30
type HHMM int

type FormatPolicy int

const (
	// FormatDegrade renders malformed minutes as-is and drops the AM/PM suffix
	FormatDegrade FormatPolicy = iota
	// FormatStrict rejects malformed values with ErrInvalidTimeEncoding
	FormatStrict
)

func ParseFormatPolicy(s string) (FormatPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degrade":
		return FormatDegrade, nil
	case "strict":
		return FormatStrict, nil
	}
	return FormatDegrade, fmt.Errorf("unknown format policy %q: %w", s, models.ErrInvalidConfiguration)
}

func Decode(v HHMM) (hours int, minutes int) {
	return int(v) / 100, int(v) % 100
}

func IsValid(v HHMM) bool {
	if v < 0 {
		return false
	}
	h, m := Decode(v)
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// MinutesSinceMidnight does not validate v
func (v HHMM) MinutesSinceMidnight() int {
	h, m := Decode(v)
	return h*60 + m
}

func (v HHMM) String() string {
	return Format12h(v)
}

// Format12h renders v as a 12 hour clock string ("2:30 PM").
// Malformed minutes degrade to "10:75" rather than failing.
func Format12h(v HHMM) string {
	s, _ := FormatWithPolicy(v, FormatDegrade)
	return s
}

func FormatWithPolicy(v HHMM, policy FormatPolicy) (string, error) {
	h, m := Decode(v)

	if m < 0 || m >= 60 {
		if policy == FormatStrict {
			return "", fmt.Errorf("time %d has minutes %d: %w", v, m, models.ErrInvalidTimeEncoding)
		}
		return fmt.Sprintf("%d:%02d", h, m), nil
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	displayHour := h % 12
	if displayHour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, m, period), nil
}

// ParseHHMM accepts operator input as either "1430" or "14:30"
func ParseHHMM(s string) (HHMM, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time: %w", models.ErrInvalidTimeEncoding)
	}

	var (
		v   int
		err error
	)
	if hm := strings.Split(s, ":"); len(hm) == 2 {
		var h, m int
		h, err = strconv.Atoi(hm[0])
		if err == nil {
			m, err = strconv.Atoi(hm[1])
		}
		if err == nil && (m < 0 || m > 99) {
			err = fmt.Errorf("minutes out of range")
		}
		v = h*100 + m
	} else {
		v, err = strconv.Atoi(s)
	}
	if err != nil {
		return 0, fmt.Errorf("parsing time %q: %w", s, models.ErrInvalidTimeEncoding)
	}

	t := HHMM(v)
	if !IsValid(t) {
		return 0, fmt.Errorf("time %q is not a valid HHMM value: %w", s, models.ErrInvalidTimeEncoding)
	}
	return t, nil
}
