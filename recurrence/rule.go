package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// UntilLayout is the compact timestamp form used for UNTIL.
const UntilLayout = "20060102T150405"

var (
	ErrUnsupportedKeyword   = errors.New("unsupported recurrence keyword")
	ErrUnsupportedFrequency = errors.New("unsupported recurrence frequency")
	ErrInvalidInterval      = errors.New("recurrence interval must be a positive integer")
	ErrMalformedRule        = errors.New("malformed recurrence rule")
)

type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// Frequencies lists the supported values in the order they are documented.
var Frequencies = []Frequency{Daily, Weekly, Monthly, Yearly}

// ParseFrequency accepts one of DAILY, WEEKLY, MONTHLY or YEARLY. Matching
// is case sensitive.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFrequency, s)
}

func (f Frequency) rrule() rrule.Frequency {
	switch f {
	case Daily:
		return rrule.DAILY
	case Weekly:
		return rrule.WEEKLY
	case Monthly:
		return rrule.MONTHLY
	default:
		return rrule.YEARLY
	}
}

// Rule is the FREQ/INTERVAL/UNTIL subset of an RFC 5545 recurrence rule.
// Until always sits at 23:59:59 of its calendar day.
type Rule struct {
	Frequency Frequency
	Interval  int
	Until     time.Time
}

// New builds a rule repeating through the end of the until day.
func New(freq Frequency, interval int, until time.Time) (Rule, error) {
	if _, err := ParseFrequency(string(freq)); err != nil {
		return Rule{}, err
	}
	if interval < 1 {
		return Rule{}, fmt.Errorf("%w: %d", ErrInvalidInterval, interval)
	}
	return Rule{
		Frequency: freq,
		Interval:  interval,
		Until:     EndOfDay(until),
	}, nil
}

// EndOfDay returns 23:59:59 on the calendar day of t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// String formats the rule as FREQ=<f>;INTERVAL=<n>;UNTIL=<YYYYMMDDThhmmss>.
func (r Rule) String() string {
	return fmt.Sprintf("FREQ=%s;INTERVAL=%d;UNTIL=%s", r.Frequency, r.Interval, r.Until.Format(UntilLayout))
}

// Parse reads the text produced by String. Only FREQ, INTERVAL and UNTIL
// are recognized and all three must be present.
func Parse(text string) (Rule, error) {
	var (
		freq     Frequency
		interval int
		until    time.Time
		seen     = map[string]bool{}
	)

	for _, part := range strings.Split(strings.TrimSpace(text), ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok || value == "" {
			return Rule{}, fmt.Errorf("%w: %q", ErrMalformedRule, part)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		if seen[key] {
			return Rule{}, fmt.Errorf("%w: %s given twice", ErrMalformedRule, key)
		}
		seen[key] = true

		var err error
		switch key {
		case "FREQ":
			freq, err = ParseFrequency(strings.ToUpper(value))
		case "INTERVAL":
			interval, err = strconv.Atoi(value)
			if err != nil {
				err = fmt.Errorf("%w: INTERVAL=%s", ErrMalformedRule, value)
			}
		case "UNTIL":
			until, err = time.ParseInLocation(UntilLayout, value, time.UTC)
			if err != nil {
				err = fmt.Errorf("%w: UNTIL=%s", ErrMalformedRule, value)
			}
		default:
			err = fmt.Errorf("%w: %s", ErrUnsupportedKeyword, key)
		}
		if err != nil {
			return Rule{}, err
		}
	}

	if !seen["FREQ"] || !seen["INTERVAL"] || !seen["UNTIL"] {
		return Rule{}, fmt.Errorf("%w: FREQ, INTERVAL and UNTIL are all required", ErrMalformedRule)
	}

	return New(freq, interval, until)
}

// Expand applies the rule with anchor as DTSTART and returns every instance
// up to and including Until.
func (r Rule) Expand(anchor time.Time) ([]time.Time, error) {
	rr, err := rrule.NewRRule(rrule.ROption{
		Freq:     r.Frequency.rrule(),
		Interval: r.Interval,
		Dtstart:  anchor,
		Until:    r.Until,
	})
	if err != nil {
		return nil, fmt.Errorf("build rrule: %w", err)
	}
	return rr.All(), nil
}
