package api

import (
	"errors"
	"fmt"
	"net/http"

	"availability-calendar/intersection"
	"availability-calendar/recurrence"
	"availability-calendar/timeslot"
	"availability-calendar/user"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorKind struct {
	err    error
	status int
	code   string
}

var errorKinds = []errorKind{
	{timeslot.ErrNotOnHourBoundary, http.StatusBadRequest, "NotOnHourBoundary"},
	{timeslot.ErrEndNotAfterStart, http.StatusBadRequest, "EndNotAfterStart"},
	{timeslot.ErrIncompleteRecurrenceSpec, http.StatusBadRequest, "IncompleteRecurrenceSpec"},
	{timeslot.ErrDuplicateTimeSlot, http.StatusConflict, "DuplicateTimeSlot"},
	{timeslot.ErrNotFound, http.StatusNotFound, "NotFound"},
	{recurrence.ErrUnsupportedKeyword, http.StatusBadRequest, "UnsupportedKeyword"},
	{recurrence.ErrUnsupportedFrequency, http.StatusBadRequest, "UnsupportedFrequency"},
	{recurrence.ErrInvalidInterval, http.StatusBadRequest, "InvalidInterval"},
	{recurrence.ErrMalformedRule, http.StatusBadRequest, "MalformedRule"},
	{intersection.ErrInsufficientUsers, http.StatusBadRequest, "InsufficientUsers"},
	{intersection.ErrUnknownUser, http.StatusBadRequest, "UnknownUser"},
	{user.ErrDuplicateUsername, http.StatusConflict, "DuplicateUsername"},
	{user.ErrUnknownRole, http.StatusBadRequest, "UnknownRole"},
	{user.ErrNotFound, http.StatusNotFound, "NotFound"},
}

// Fail writes a structured failure with a caller facing description.
func (a *API) Fail(w http.ResponseWriter, status int, code string, format string, args ...any) {
	a.Response(w, status, errorResponse{
		Error: fmt.Sprintf(format, args...),
		Code:  code,
	})
}

// Error maps a domain error to its status and code. Anything unrecognized
// is logged and reported as an internal error.
func (a *API) Error(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			a.Fail(w, k.status, k.code, "%s", err)
			return
		}
	}

	a.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	a.Fail(w, http.StatusInternalServerError, "Internal", "internal server error")
}

func (a *API) invalidInput(w http.ResponseWriter, format string, args ...any) {
	a.Fail(w, http.StatusBadRequest, "InvalidInput", format, args...)
}

type recoveryLogger struct {
	log *zap.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error("recovered from panic", zap.String("panic", fmt.Sprint(v...)))
}
