package api

import (
	"errors"
	"net/http"
	"strings"

	"availability-calendar/intersection"
	"availability-calendar/naivetime"
	"availability-calendar/timeslot"
	"availability-calendar/user"
)

type interval struct {
	Start naivetime.DateTime `json:"start"`
	End   naivetime.DateTime `json:"end"`
}

type intersectionResponse struct {
	Users                 []string   `json:"users"`
	IntersectingTimeSlots []interval `json:"intersecting_time_slots"`
}

// getTimeSlotIntersection answers ?users=<user1>,<user2>,... with the one
// hour slots every listed user is available for.
func (a *API) getTimeSlotIntersection(w http.ResponseWriter, r *http.Request) {
	raw, ok := r.URL.Query()["users"]
	if !ok {
		a.invalidInput(w, "no users specified, use the url parameter 'users' e.g. ?users=<user1>,<user2>")
		return
	}

	usernames := strings.Split(raw[0], ",")
	for i, name := range usernames {
		usernames[i] = strings.TrimSpace(name)
	}

	engine := intersection.NewEngine(user.NewAccessor(a.db), timeslot.NewAccessor(a.db))
	result, err := engine.Intersect(r.Context(), usernames)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	response := intersectionResponse{
		Users:                 result.Usernames,
		IntersectingTimeSlots: make([]interval, len(result.Occurrences)),
	}
	for i, o := range result.Occurrences {
		response.IntersectingTimeSlots[i] = interval{
			Start: naivetime.DateTime{Time: o.Start},
			End:   naivetime.DateTime{Time: o.End()},
		}
	}
	a.Response(w, http.StatusOK, response)
}

// asUnknownCreator reports a missing creator the same way an unknown user
// in an intersection query is reported.
func asUnknownCreator(err error, username string) error {
	if errors.Is(err, user.ErrNotFound) {
		return &intersection.UnknownUserError{Username: username}
	}
	return err
}
