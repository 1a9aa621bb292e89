package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"availability-calendar/database"
	"availability-calendar/naivetime"
	"availability-calendar/user"

	"github.com/google/uuid"
)

const selectTimeSlots = `SELECT t.id, t.start_time, t.end_time, t.rrule, u.id, u.username, u.is_interviewer FROM time_slots t JOIN users u ON u.id = t.creator_id`

// CreateTimeSlot persists a built slot. The unique constraint on
// (start_time, end_time, creator_id, rrule) makes the duplicate check and
// the insert a single atomic statement.
func (a *Accessor) CreateTimeSlot(ctx context.Context, slot TimeSlot) (TimeSlot, error) {
	if slot.Creator.ID == uuid.Nil {
		return TimeSlot{}, errors.New("creator is required")
	}

	id := uuid.New()

	query := `INSERT INTO time_slots (id, start_time, end_time, rrule, creator_id) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (start_time, end_time, creator_id, rrule) DO NOTHING RETURNING id`
	row := a.db.QueryRowContext(ctx, query, id, slot.Start, slot.End, RuleColumn{Rule: slot.RRule}, slot.Creator.ID)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || database.IsUniqueViolation(err) {
			return TimeSlot{}, ErrDuplicateTimeSlot
		}
		return TimeSlot{}, fmt.Errorf("scan: %w", err)
	}

	slot.ID = id
	return slot, nil
}

// GetTimeSlots lists time slots ordered by start. FilterByCreator matches
// the creator's username and FilterByRole the creator's role.
func (a *Accessor) GetTimeSlots(ctx context.Context, filter user.Filter) ([]TimeSlot, error) {
	var (
		rows *sql.Rows
		err  error
	)

	const order = ` ORDER BY t.start_time, t.end_time, t.id`
	switch filter.Kind {
	case user.FilterNone:
		rows, err = a.db.QueryContext(ctx, selectTimeSlots+order)
	case user.FilterByCreator:
		rows, err = a.db.QueryContext(ctx, selectTimeSlots+` WHERE u.username = $1`+order, filter.Creator)
	case user.FilterByRole:
		rows, err = a.db.QueryContext(ctx, selectTimeSlots+` WHERE u.is_interviewer = $1`+order, filter.Role == user.Interviewer)
	default:
		return nil, fmt.Errorf("unsupported time slot filter: %d", filter.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	slots := []TimeSlot{}
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

func (a *Accessor) GetTimeSlot(ctx context.Context, id uuid.UUID) (TimeSlot, error) {
	row := a.db.QueryRowContext(ctx, selectTimeSlots+` WHERE t.id = $1`, id)
	slot, err := scanTimeSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TimeSlot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slot, err
}

func (a *Accessor) DeleteTimeSlot(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM time_slots WHERE id = $1`
	res, err := a.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTimeSlot(row scanner) (TimeSlot, error) {
	var (
		slot TimeSlot
		rule RuleColumn
	)
	err := row.Scan(&slot.ID, &slot.Start, &slot.End, &rule,
		&slot.Creator.ID, &slot.Creator.Username, &slot.Creator.IsInterviewer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TimeSlot{}, err
		}
		return TimeSlot{}, fmt.Errorf("scan: %w", err)
	}

	slot.Start = naivetime.Normalize(slot.Start)
	slot.End = naivetime.Normalize(slot.End)
	slot.RRule = rule.Rule
	return slot, nil
}
