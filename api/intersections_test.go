package api_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotIntersectionAPI(t *testing.T) {
	t.Parallel()

	hour := func(h int) time.Time {
		return time.Date(2018, 6, 22, h, 0, 0, 0, time.UTC)
	}
	get := func(a http.Handler, query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/time-slot-intersections"+query, nil)
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, req)
		return rec
	}
	expectSlots := func(dbMock sqlmock.Sqlmock, id uuid.UUID, username string, interviewer bool, start, end time.Time) {
		dbMock.ExpectQuery(regexp.QuoteMeta(slotsByCreatorQuery)).
			WithArgs(username).
			WillReturnRows(sqlmock.NewRows(slotColumns).
				AddRow(uuid.NewString(), start, end, "", id.String(), username, interviewer))
	}

	t.Run("common hour", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		philipp, carl := uuid.New(), uuid.New()
		expectUser(dbMock, philipp, "philipp", true)
		expectUser(dbMock, carl, "carl", false)
		expectSlots(dbMock, philipp, "philipp", true, hour(9), hour(10))
		expectSlots(dbMock, carl, "carl", false, hour(9), hour(10))

		rec := get(a.Router(), "?users=philipp,carl")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusOK, rec.Code)
		_, body := decode(t, rec)
		assert.Equal(t, []any{"philipp", "carl"}, body["users"])
		assert.Equal(t, []any{
			map[string]any{"start": "2018-06-22T09:00:00", "end": "2018-06-22T10:00:00"},
		}, body["intersecting_time_slots"])
	})

	t.Run("no common hour", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		philipp, carl := uuid.New(), uuid.New()
		expectUser(dbMock, philipp, "philipp", true)
		expectUser(dbMock, carl, "carl", false)
		expectSlots(dbMock, philipp, "philipp", true, hour(10), hour(11))
		expectSlots(dbMock, carl, "carl", false, hour(9), hour(10))

		rec := get(a.Router(), "?users=philipp,%20carl")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusOK, rec.Code)
		_, body := decode(t, rec)
		assert.Equal(t, []any{}, body["intersecting_time_slots"])
	})

	t.Run("missing users parameter", func(t *testing.T) {
		t.Parallel()
		a, _ := setupAPI(t)

		rec := get(a.Router(), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		_, body := decode(t, rec)
		assert.Equal(t, "InvalidInput", body["code"])
	})

	t.Run("single user", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		rec := get(a.Router(), "?users=philipp")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		_, body := decode(t, rec)
		assert.Equal(t, "InsufficientUsers", body["code"])
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		a, dbMock := setupAPI(t)

		expectUser(dbMock, uuid.New(), "philipp", true)
		expectNoUser(dbMock, "ghost")

		rec := get(a.Router(), "?users=philipp,ghost")

		require.NoError(t, dbMock.ExpectationsWereMet())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		_, body := decode(t, rec)
		assert.Equal(t, "UnknownUser", body["code"])
		assert.Contains(t, body["error"], "ghost")
	})
}
