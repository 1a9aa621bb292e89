// Package intersection computes the one-hour occurrences that a group of
// users are all available for.
package intersection

import (
	"context"
	"errors"
	"fmt"

	"availability-calendar/occurrence"
	"availability-calendar/timeslot"
	"availability-calendar/user"
)

var (
	ErrInsufficientUsers = errors.New("at least two users are required, e.g. ?users=<user1>,<user2>")
	ErrUnknownUser       = errors.New("user does not exist")
)

// UnknownUserError names the first username that could not be resolved.
type UnknownUserError struct {
	Username string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("user %s does not exist", e.Username)
}

func (e *UnknownUserError) Is(target error) bool {
	return target == ErrUnknownUser
}

type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

type TimeSlotLister interface {
	GetTimeSlots(ctx context.Context, filter user.Filter) ([]timeslot.TimeSlot, error)
}

type Engine struct {
	users UserFinder
	slots TimeSlotLister
}

func NewEngine(users UserFinder, slots TimeSlotLister) *Engine {
	return &Engine{
		users: users,
		slots: slots,
	}
}

// Result echoes the queried usernames alongside the common occurrences,
// sorted by start.
type Result struct {
	Usernames   []string
	Occurrences []occurrence.Occurrence
}

// Intersect resolves every username before expanding anything, so an
// unknown user fails the whole query without partial work. Repeated
// usernames count once.
func (e *Engine) Intersect(ctx context.Context, usernames []string) (Result, error) {
	distinct := dedupe(usernames)
	if len(distinct) < 2 {
		return Result{}, ErrInsufficientUsers
	}

	users := make([]user.User, 0, len(distinct))
	for _, name := range distinct {
		u, err := e.users.GetUserByUsername(ctx, name)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return Result{}, &UnknownUserError{Username: name}
			}
			return Result{}, fmt.Errorf("get user %s: %w", name, err)
		}
		users = append(users, u)
	}

	sets := make([]*occurrence.Set, 0, len(users))
	for _, u := range users {
		set, err := e.availability(ctx, u)
		if err != nil {
			return Result{}, err
		}
		sets = append(sets, set)
	}

	return Result{
		Usernames:   usernames,
		Occurrences: occurrence.Intersect(sets...).Occurrences(),
	}, nil
}

// availability is the union of every occurrence of every slot u created.
func (e *Engine) availability(ctx context.Context, u user.User) (*occurrence.Set, error) {
	slots, err := e.slots.GetTimeSlots(ctx, user.ByCreator(u.Username))
	if err != nil {
		return nil, fmt.Errorf("get time slots for %s: %w", u.Username, err)
	}

	set := occurrence.NewSet()
	for _, slot := range slots {
		expanded, err := timeslot.Expand(slot)
		if err != nil {
			return nil, fmt.Errorf("expand time slot %s: %w", slot.ID, err)
		}
		set.Union(expanded)
	}
	return set, nil
}

func dedupe(usernames []string) []string {
	seen := make(map[string]bool, len(usernames))
	out := make([]string, 0, len(usernames))
	for _, name := range usernames {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
