package timeslot

import (
	"fmt"
	"time"

	"availability-calendar/occurrence"
)

// Expand returns the one-hour occurrences a slot denotes. The slot is split
// into hourly anchors between Start and End; without a rule those anchors
// are the result. With a rule each anchor repeats on its own through Until,
// so a two hour weekly slot yields two weekly streams rather than one
// stream of two hour blocks.
func Expand(slot TimeSlot) (*occurrence.Set, error) {
	hours := int(slot.End.Sub(slot.Start) / time.Hour)

	set := occurrence.NewSet()
	for k := range hours {
		anchor := slot.Start.Add(time.Duration(k) * time.Hour)
		if slot.RRule == nil {
			set.Add(anchor)
			continue
		}

		starts, err := slot.RRule.Expand(anchor)
		if err != nil {
			return nil, fmt.Errorf("expand %s from %s: %w", slot.RRule, anchor.Format(time.DateTime), err)
		}
		for _, s := range starts {
			set.Add(s)
		}
	}

	return set, nil
}
