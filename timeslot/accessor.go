package timeslot

import "availability-calendar/database"

// Accessor reads and writes time slots. Every query joins the creator so
// callers always receive a populated TimeSlot.Creator.
type Accessor struct {
	db database.Querier
}

func NewAccessor(db database.Querier) *Accessor {
	return &Accessor{db: db}
}
