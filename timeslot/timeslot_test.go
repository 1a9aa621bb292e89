package timeslot_test

import (
	"testing"
	"time"

	"availability-calendar/recurrence"
	"availability-calendar/timeslot"
	"availability-calendar/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var philipp = user.User{ID: uuid.New(), Username: "philipp", IsInterviewer: true}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func TestBuild(t *testing.T) {
	t.Parallel()

	start := at(2018, 6, 22, 9, 0)
	end := at(2018, 6, 22, 11, 0)

	t.Run("non repeating", func(t *testing.T) {
		t.Parallel()
		slot, err := timeslot.Build(timeslot.Input{Start: start, End: end}, philipp)
		require.NoError(t, err)
		assert.Nil(t, slot.RRule)
		assert.Equal(t, "", slot.RRuleText())
		assert.Equal(t, philipp, slot.Creator)
	})

	t.Run("repeating", func(t *testing.T) {
		t.Parallel()
		slot, err := timeslot.Build(timeslot.Input{
			Start:     start,
			End:       end,
			Frequency: ptr(recurrence.Weekly),
			Interval:  ptr(1),
			Until:     ptr(at(2018, 6, 25, 0, 0)),
		}, philipp)
		require.NoError(t, err)
		require.NotNil(t, slot.RRule)
		assert.Equal(t, "FREQ=WEEKLY;INTERVAL=1;UNTIL=20180625T235959", slot.RRuleText())
	})

	t.Run("start off the hour wins regardless of end", func(t *testing.T) {
		t.Parallel()
		for _, e := range []time.Time{end, at(2018, 6, 22, 8, 0), at(2018, 6, 22, 9, 45)} {
			_, err := timeslot.Build(timeslot.Input{Start: at(2018, 6, 22, 9, 30), End: e}, philipp)
			require.ErrorIs(t, err, timeslot.ErrNotOnHourBoundary)
		}
	})

	t.Run("start with seconds", func(t *testing.T) {
		t.Parallel()
		_, err := timeslot.Build(timeslot.Input{Start: start.Add(15 * time.Second), End: end}, philipp)
		require.ErrorIs(t, err, timeslot.ErrNotOnHourBoundary)
	})

	t.Run("end off the hour", func(t *testing.T) {
		t.Parallel()
		_, err := timeslot.Build(timeslot.Input{Start: start, End: at(2018, 6, 22, 10, 30)}, philipp)
		require.ErrorIs(t, err, timeslot.ErrNotOnHourBoundary)
	})

	t.Run("end not after start", func(t *testing.T) {
		t.Parallel()
		_, err := timeslot.Build(timeslot.Input{Start: start, End: start}, philipp)
		require.ErrorIs(t, err, timeslot.ErrEndNotAfterStart)

		_, err = timeslot.Build(timeslot.Input{Start: end, End: start}, philipp)
		require.ErrorIs(t, err, timeslot.ErrEndNotAfterStart)
	})

	t.Run("mixed recurrence fields", func(t *testing.T) {
		t.Parallel()
		inputs := []timeslot.Input{
			{Start: start, End: end, Frequency: ptr(recurrence.Daily)},
			{Start: start, End: end, Interval: ptr(2)},
			{Start: start, End: end, Until: ptr(end)},
			{Start: start, End: end, Frequency: ptr(recurrence.Daily), Interval: ptr(2)},
			{Start: start, End: end, Interval: ptr(2), Until: ptr(end)},
		}
		for _, in := range inputs {
			_, err := timeslot.Build(in, philipp)
			require.ErrorIs(t, err, timeslot.ErrIncompleteRecurrenceSpec)
		}
	})

	t.Run("invalid interval", func(t *testing.T) {
		t.Parallel()
		_, err := timeslot.Build(timeslot.Input{
			Start:     start,
			End:       end,
			Frequency: ptr(recurrence.Daily),
			Interval:  ptr(-1),
			Until:     ptr(end),
		}, philipp)
		require.ErrorIs(t, err, recurrence.ErrInvalidInterval)
	})
}

func TestRuleColumn(t *testing.T) {
	t.Parallel()

	rule, err := recurrence.New(recurrence.Daily, 2, at(2018, 7, 1, 0, 0))
	require.NoError(t, err)

	v, err := timeslot.RuleColumn{Rule: &rule}.Value()
	require.NoError(t, err)
	assert.Equal(t, "FREQ=DAILY;INTERVAL=2;UNTIL=20180701T235959", v)

	v, err = timeslot.RuleColumn{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	var col timeslot.RuleColumn
	require.NoError(t, col.Scan([]byte("FREQ=DAILY;INTERVAL=2;UNTIL=20180701T235959")))
	require.NotNil(t, col.Rule)
	assert.Equal(t, rule, *col.Rule)

	require.NoError(t, col.Scan(""))
	assert.Nil(t, col.Rule)

	require.Error(t, col.Scan("FREQ=DAILY;BYDAY=MO"))
	require.Error(t, col.Scan(42))
}
