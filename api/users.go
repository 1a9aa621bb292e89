package api

import (
	"encoding/json"
	"net/http"

	"availability-calendar/calendar"
	"availability-calendar/timeslot"
	"availability-calendar/user"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Username      string `json:"username"`
	IsInterviewer *bool  `json:"is_interviewer"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.invalidInput(w, "invalid request body")
		return
	}
	if req.IsInterviewer == nil {
		a.invalidInput(w, "is_interviewer is required")
		return
	}

	payload := user.User{
		Username:      req.Username,
		IsInterviewer: *req.IsInterviewer,
	}
	if err := payload.Validate(); err != nil {
		a.invalidInput(w, "validate: %s", err)
		return
	}

	userAccessor := user.NewAccessor(a.db)
	created, err := userAccessor.CreateUser(r.Context(), payload)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	a.log.Info("user created", zap.String("username", created.Username), zap.String("type", string(created.Role())))
	a.Response(w, http.StatusCreated, created)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUserByUsername(r.Context(), username)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	a.Response(w, http.StatusOK, u)
}

type getUsersResponse struct {
	Users []user.User `json:"users"`
}

// getUsers lists users, optionally narrowed with ?type=interviewer or
// ?type=candidate.
func (a *API) getUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.NoFilter()
	if t, ok := r.URL.Query()["type"]; ok {
		role, err := user.ParseRole(t[0])
		if err != nil {
			a.Error(w, r, err)
			return
		}
		filter = user.ByRole(role)
	}

	userAccessor := user.NewAccessor(a.db)
	users, err := userAccessor.GetUsers(r.Context(), filter)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	response := getUsersResponse{
		Users: users,
	}
	a.Response(w, http.StatusOK, response)
}

func (a *API) getUserCalendar(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUserByUsername(r.Context(), username)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	slotAccessor := timeslot.NewAccessor(a.db)
	slots, err := slotAccessor.GetTimeSlots(r.Context(), user.ByCreator(u.Username))
	if err != nil {
		a.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+u.Username+`.ics"`)
	if err := calendar.Export(w, u, slots, a.now()); err != nil {
		a.log.Error("export calendar", zap.String("username", u.Username), zap.Error(err))
	}
}
