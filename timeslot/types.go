package timeslot

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"availability-calendar/recurrence"
	"availability-calendar/user"

	"github.com/google/uuid"
)

var (
	ErrNotOnHourBoundary        = errors.New("time slots must start and end at the beginning of an hour, e.g. 2018-06-22T17:00:00 rather than 2018-06-22T17:30:00")
	ErrEndNotAfterStart         = errors.New("end datetime must be after start datetime")
	ErrIncompleteRecurrenceSpec = errors.New("recurring time slots need all of 'frequency', 'interval' and 'until'")
	ErrDuplicateTimeSlot        = errors.New("an identical time slot already exists for this creator")
	ErrNotFound                 = errors.New("time slot not found")
)

// TimeSlot is a block of availability owned by a user, optionally repeating.
type TimeSlot struct {
	ID      uuid.UUID
	Start   time.Time
	End     time.Time
	RRule   *recurrence.Rule
	Creator user.User
}

// RRuleText is the serialized rule, empty for non-repeating slots.
func (s TimeSlot) RRuleText() string {
	if s.RRule == nil {
		return ""
	}
	return s.RRule.String()
}

// Input carries unvalidated slot fields. The recurrence fields are nil when
// absent.
type Input struct {
	Start     time.Time
	End       time.Time
	Frequency *recurrence.Frequency
	Interval  *int
	Until     *time.Time
}

// Build validates in and returns the time slot it describes. Checks run in
// a fixed order and the first failure is returned.
func Build(in Input, creator user.User) (TimeSlot, error) {
	if !onHour(in.Start) {
		return TimeSlot{}, fmt.Errorf("start %s: %w", in.Start.Format(time.DateTime), ErrNotOnHourBoundary)
	}
	if !onHour(in.End) {
		return TimeSlot{}, fmt.Errorf("end %s: %w", in.End.Format(time.DateTime), ErrNotOnHourBoundary)
	}
	if !in.End.After(in.Start) {
		return TimeSlot{}, ErrEndNotAfterStart
	}

	slot := TimeSlot{
		Start:   in.Start,
		End:     in.End,
		Creator: creator,
	}

	allPresent := in.Frequency != nil && in.Interval != nil && in.Until != nil
	allAbsent := in.Frequency == nil && in.Interval == nil && in.Until == nil
	switch {
	case allAbsent:
		return slot, nil
	case !allPresent:
		return TimeSlot{}, ErrIncompleteRecurrenceSpec
	}

	rule, err := recurrence.New(*in.Frequency, *in.Interval, *in.Until)
	if err != nil {
		return TimeSlot{}, err
	}
	slot.RRule = &rule

	return slot, nil
}

func onHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// RuleColumn stores an optional rule as text, using "" for none.
type RuleColumn struct {
	Rule *recurrence.Rule
}

// Value implements driver.Valuer for INSERT.
func (c RuleColumn) Value() (driver.Value, error) {
	if c.Rule == nil {
		return "", nil
	}
	return c.Rule.String(), nil
}

// Scan implements sql.Scanner for SELECT.
func (c *RuleColumn) Scan(value any) error {
	var text string
	switch v := value.(type) {
	case nil:
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("not a string: %T", value)
	}

	if text == "" {
		c.Rule = nil
		return nil
	}
	rule, err := recurrence.Parse(text)
	if err != nil {
		return fmt.Errorf("parse rrule %q: %w", text, err)
	}
	c.Rule = &rule
	return nil
}
