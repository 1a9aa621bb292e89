package api

import (
	"encoding/json"
	"net/http"

	"availability-calendar/naivetime"
	"availability-calendar/recurrence"
	"availability-calendar/timeslot"
	"availability-calendar/user"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// createTimeSlotRequest is the API DTO. frequency, interval and until are
// either all given for a repeating slot or all omitted.
type createTimeSlotRequest struct {
	StartDatetime *naivetime.DateTime `json:"start_datetime"`
	EndDatetime   *naivetime.DateTime `json:"end_datetime"`
	Creator       string              `json:"creator"`
	Frequency     *string             `json:"frequency"`
	Interval      *int                `json:"interval"`
	Until         *naivetime.Date     `json:"until"`
}

type creatorResponse struct {
	Username string    `json:"username"`
	Type     user.Role `json:"type"`
}

type timeSlotResponse struct {
	ID            uuid.UUID          `json:"id"`
	StartDatetime naivetime.DateTime `json:"start_datetime"`
	EndDatetime   naivetime.DateTime `json:"end_datetime"`
	RRule         *string            `json:"rrule"`
	Creator       creatorResponse    `json:"creator"`
}

func newTimeSlotResponse(slot timeslot.TimeSlot) timeSlotResponse {
	res := timeSlotResponse{
		ID:            slot.ID,
		StartDatetime: naivetime.DateTime{Time: slot.Start},
		EndDatetime:   naivetime.DateTime{Time: slot.End},
		Creator: creatorResponse{
			Username: slot.Creator.Username,
			Type:     slot.Creator.Role(),
		},
	}
	if slot.RRule != nil {
		text := slot.RRule.String()
		res.RRule = &text
	}
	return res
}

func (a *API) createTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req createTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.invalidInput(w, "invalid request body: %s", err)
		return
	}
	if req.StartDatetime == nil || req.EndDatetime == nil || req.Creator == "" {
		a.invalidInput(w, "start_datetime, end_datetime and creator are required")
		return
	}

	userAccessor := user.NewAccessor(a.db)
	creator, err := userAccessor.GetUserByUsername(r.Context(), req.Creator)
	if err != nil {
		a.Error(w, r, asUnknownCreator(err, req.Creator))
		return
	}

	input := timeslot.Input{
		Start:    req.StartDatetime.Time,
		End:      req.EndDatetime.Time,
		Interval: req.Interval,
	}
	if req.Frequency != nil {
		freq := recurrence.Frequency(*req.Frequency)
		input.Frequency = &freq
	}
	if req.Until != nil {
		input.Until = &req.Until.Time
	}

	slot, err := timeslot.Build(input, creator)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	slotAccessor := timeslot.NewAccessor(a.db)
	created, err := slotAccessor.CreateTimeSlot(r.Context(), slot)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	a.log.Info("time slot created",
		zap.Stringer("id", created.ID),
		zap.String("creator", creator.Username),
		zap.String("rrule", created.RRuleText()),
	)
	a.Response(w, http.StatusCreated, newTimeSlotResponse(created))
}

type getTimeSlotsResponse struct {
	TimeSlots []timeSlotResponse `json:"time_slots"`
}

// getTimeSlots lists time slots, optionally narrowed with ?creator=<username>.
func (a *API) getTimeSlots(w http.ResponseWriter, r *http.Request) {
	filter := user.NoFilter()
	if c, ok := r.URL.Query()["creator"]; ok {
		userAccessor := user.NewAccessor(a.db)
		creator, err := userAccessor.GetUserByUsername(r.Context(), c[0])
		if err != nil {
			a.Error(w, r, asUnknownCreator(err, c[0]))
			return
		}
		filter = user.ByCreator(creator.Username)
	}

	slotAccessor := timeslot.NewAccessor(a.db)
	slots, err := slotAccessor.GetTimeSlots(r.Context(), filter)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	response := getTimeSlotsResponse{
		TimeSlots: make([]timeSlotResponse, len(slots)),
	}
	for i, s := range slots {
		response.TimeSlots[i] = newTimeSlotResponse(s)
	}
	a.Response(w, http.StatusOK, response)
}

func (a *API) getTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := a.timeSlotID(w, r)
	if !ok {
		return
	}

	slotAccessor := timeslot.NewAccessor(a.db)
	slot, err := slotAccessor.GetTimeSlot(r.Context(), id)
	if err != nil {
		a.Error(w, r, err)
		return
	}

	a.Response(w, http.StatusOK, newTimeSlotResponse(slot))
}

func (a *API) deleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := a.timeSlotID(w, r)
	if !ok {
		return
	}

	slotAccessor := timeslot.NewAccessor(a.db)
	if err := slotAccessor.DeleteTimeSlot(r.Context(), id); err != nil {
		a.Error(w, r, err)
		return
	}

	a.log.Info("time slot deleted", zap.Stringer("id", id))
	a.Response(w, http.StatusNoContent, nil)
}

func (a *API) timeSlotID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.invalidInput(w, "invalid time slot ID")
		return uuid.Nil, false
	}
	return id, true
}
