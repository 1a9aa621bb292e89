package api

import "net/http"

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type welcomeResponse struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}

func (a *API) welcome(w http.ResponseWriter, _ *http.Request) {
	a.Response(w, http.StatusOK, welcomeResponse{
		Name:    "Availability Calendar",
		Version: "1.0",
		Description: "A REST calendar API that lets interviewers and candidates specify time slots " +
			"when they are available for an interview, and returns the one hour slots when a " +
			"group of them are all available together.",
		Endpoints: []string{
			"/api/users",
			"/api/users/{username}",
			"/api/users/{username}/calendar.ics",
			"/api/time-slots",
			"/api/time-slots/{id}",
			"/api/time-slot-intersections?users=<user1>,<user2>",
		},
	})
}
