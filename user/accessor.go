package user

import "availability-calendar/database"

// Accessor reads and writes users through a database.Querier.
type Accessor struct {
	db database.Querier
}

func NewAccessor(db database.Querier) *Accessor {
	return &Accessor{db: db}
}
