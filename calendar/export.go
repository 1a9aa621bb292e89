// Package calendar renders a user's availability as an iCalendar feed so it
// can be subscribed to from ordinary calendar clients.
package calendar

import (
	"fmt"
	"io"
	"time"

	"availability-calendar/timeslot"
	"availability-calendar/user"

	ics "github.com/arran4/golang-ical"
)

const (
	ProductID = "-//availability-calendar//EN"
	// floatingLayout writes DTSTART/DTEND without a zone, which iCalendar
	// treats as local wall clock time.
	floatingLayout = "20060102T150405"
)

// Export writes one VEVENT per time slot. Repeating slots carry their rule
// as an RRULE property.
func Export(w io.Writer, owner user.User, slots []timeslot.TimeSlot, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(fmt.Sprintf("%s availability", owner.Username))

	for _, slot := range slots {
		event := cal.AddEvent(fmt.Sprintf("%s@availability-calendar", slot.ID))
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, slot.Start.Format(floatingLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, slot.End.Format(floatingLayout))
		event.SetSummary(fmt.Sprintf("%s available (%s)", owner.Username, owner.Role()))
		if slot.RRule != nil {
			event.AddProperty(ics.ComponentPropertyRrule, slot.RRule.String())
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}
