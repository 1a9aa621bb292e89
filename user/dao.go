package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"availability-calendar/database"

	"github.com/google/uuid"
)

const selectUsers = `SELECT id, username, is_interviewer FROM users`

func (a *Accessor) CreateUser(ctx context.Context, user User) (User, error) {
	if err := user.Validate(); err != nil {
		return User{}, fmt.Errorf("validate: %w", err)
	}

	id := uuid.New()

	query := `INSERT INTO users (id, username, is_interviewer) VALUES ($1, $2, $3)`
	if _, err := a.db.ExecContext(ctx, query, id, user.Username, user.IsInterviewer); err != nil {
		if database.IsUniqueViolation(err) {
			return User{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, user.Username)
		}
		return User{}, fmt.Errorf("exec context: %w", err)
	}

	return User{
		ID:            id,
		Username:      user.Username,
		IsInterviewer: user.IsInterviewer,
	}, nil
}

// GetUsers lists users ordered by username. Only FilterNone and
// FilterByRole apply to users.
func (a *Accessor) GetUsers(ctx context.Context, filter Filter) ([]User, error) {
	var (
		rows *sql.Rows
		err  error
	)

	switch filter.Kind {
	case FilterNone:
		rows, err = a.db.QueryContext(ctx, selectUsers+` ORDER BY username`)
	case FilterByRole:
		rows, err = a.db.QueryContext(ctx, selectUsers+` WHERE is_interviewer = $1 ORDER BY username`, filter.Role == Interviewer)
	default:
		return nil, fmt.Errorf("unsupported user filter: %d", filter.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.IsInterviewer); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (a *Accessor) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	row := a.db.QueryRowContext(ctx, selectUsers+` WHERE id = $1`, id)
	return scanUser(row, id.String())
}

func (a *Accessor) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := a.db.QueryRowContext(ctx, selectUsers+` WHERE username = $1`, username)
	return scanUser(row, username)
}

func scanUser(row *sql.Row, key string) (User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.IsInterviewer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return User{}, fmt.Errorf("scan: %w", err)
	}
	return user, nil
}
