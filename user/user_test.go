package user_test

import (
	"database/sql"
	"regexp"
	"testing"

	"availability-calendar/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "is_interviewer"}

func TestUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := user.NewAccessor(db)

	const username = "philipp"

	insertQuery := `INSERT INTO users (id, username, is_interviewer) VALUES ($1, $2, $3)`

	t.Run("create user", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), username, true).
			WillReturnResult(sqlmock.NewResult(1, 1))

		createdUser, err := a.CreateUser(t.Context(), user.User{
			Username:      username,
			IsInterviewer: true,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, createdUser.ID)
		assert.Equal(t, username, createdUser.Username)
		assert.Equal(t, user.Interviewer, createdUser.Role())

		require.NoError(t, mock.ExpectationsWereMet())

		t.Run("get user", func(t *testing.T) {
			selectQuery := `SELECT id, username, is_interviewer FROM users WHERE id = $1`
			mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
				WithArgs(createdUser.ID).
				WillReturnRows(sqlmock.NewRows(userColumns).AddRow(createdUser.ID.String(), username, true))

			u, err := a.GetUser(t.Context(), createdUser.ID)
			require.NoError(t, err)
			assert.Equal(t, createdUser, u)

			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("get user by username", func(t *testing.T) {
			selectQuery := `SELECT id, username, is_interviewer FROM users WHERE username = $1`
			mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
				WithArgs(username).
				WillReturnRows(sqlmock.NewRows(userColumns).AddRow(createdUser.ID.String(), username, true))

			u, err := a.GetUserByUsername(t.Context(), username)
			require.NoError(t, err)
			assert.Equal(t, createdUser, u)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("get user - no rows", func(t *testing.T) {
		selectQuery := `SELECT id, username, is_interviewer FROM users WHERE username = $1`
		mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := a.GetUserByUsername(t.Context(), "ghost")
		require.ErrorIs(t, err, user.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create user - duplicate username", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), username, false).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := a.CreateUser(t.Context(), user.User{Username: username})
		require.ErrorIs(t, err, user.ErrDuplicateUsername)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create user - invalid username", func(t *testing.T) {
		_, err := a.CreateUser(t.Context(), user.User{Username: "carl,philipp"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validate")
	})

	t.Run("get users", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, is_interviewer FROM users ORDER BY username`)).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(uuid.NewString(), "carl", false).
				AddRow(uuid.NewString(), "philipp", true))

		users, err := a.GetUsers(t.Context(), user.NoFilter())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "carl", users[0].Username)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get users by role", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, is_interviewer FROM users WHERE is_interviewer = $1 ORDER BY username`)).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uuid.NewString(), "carl", false))

		users, err := a.GetUsers(t.Context(), user.ByRole(user.Candidate))
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, user.Candidate, users[0].Role())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get users by creator is rejected", func(t *testing.T) {
		_, err := a.GetUsers(t.Context(), user.ByCreator("carl"))
		require.Error(t, err)
	})
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, err := user.ParseRole("interviewer")
	require.NoError(t, err)
	assert.Equal(t, user.Interviewer, r)

	_, err = user.ParseRole("manager")
	require.ErrorIs(t, err, user.ErrUnknownRole)
}

func TestUserString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Username: carl, Type: candidate", user.User{Username: "carl"}.String())
}
