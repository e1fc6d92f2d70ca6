package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/corax26/servoscheduler/internal/server"
)

// Handler implements the facade's RPC surface as JSON request handlers.
type Handler struct {
	facade *server.Server
	logger *slog.Logger
}

// NewHandler builds a Handler routing to facade.
func NewHandler(facade *server.Server, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{facade: facade, logger: logger}
}

// actuatorStateDTO is the wire shape of schedule.ActuatorState.
type actuatorStateDTO struct {
	Bool  *bool    `json:"bool,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

func (d actuatorStateDTO) toState() schedule.ActuatorState {
	if d.Bool != nil {
		return schedule.BoolState(*d.Bool)
	}
	return schedule.FloatState(*d.Value)
}

func stateToDTO(s schedule.ActuatorState) actuatorStateDTO {
	if s.Kind == schedule.Toggle {
		b := s.Bool
		return actuatorStateDTO{Bool: &b}
	}
	v := s.Value
	return actuatorStateDTO{Value: &v}
}

type timePeriodDTO struct {
	IntervalStart string `json:"interval_start"`
	IntervalEnd   string `json:"interval_end"`
	DateStart     string `json:"date_start,omitempty"`
	DateEnd       string `json:"date_end,omitempty"`
	Days          string `json:"days"`
}

func (d timePeriodDTO) toPeriod() (schedule.TimePeriod, error) {
	start, err := schedule.ParseTime(d.IntervalStart)
	if err != nil {
		return schedule.TimePeriod{}, err
	}
	end, err := schedule.ParseTime(d.IntervalEnd)
	if err != nil {
		return schedule.TimePeriod{}, err
	}
	days, err := schedule.ParseWeekdaySet(d.Days)
	if err != nil {
		return schedule.TimePeriod{}, err
	}
	dates := schedule.DateRange{Start: schedule.DateMIN, End: schedule.DateMAX}
	if d.DateStart != "" {
		ds, err := schedule.ParseDate(d.DateStart, schedule.DateMIN)
		if err != nil {
			return schedule.TimePeriod{}, err
		}
		dates.Start = ds
	}
	if d.DateEnd != "" {
		de, err := schedule.ParseDate(d.DateEnd, schedule.DateMAX)
		if err != nil {
			return schedule.TimePeriod{}, err
		}
		dates.End = de
	}
	return schedule.TimePeriod{
		Interval: schedule.TimeInterval{Start: start, End: end},
		Dates:    dates,
		Days:     days,
	}, nil
}

func idFromPath(r *http.Request, key string) (int, error) {
	return strconv.Atoi(r.PathValue(key))
}

// ListActuators handles GET /v1/actuators.
func (h *Handler) ListActuators(w http.ResponseWriter, r *http.Request) {
	infos := h.facade.ListActuators(r.Context())
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	out := make([]item, len(infos))
	for i, info := range infos {
		out[i] = item{ID: i, Name: info.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListTimeSlots handles GET /v1/actuators/{id}/timeslots.
func (h *Handler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return
	}
	slots, err := h.facade.ListTimeSlots(r.Context(), server.ActuatorID(id))
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// GetDefaultState handles GET /v1/actuators/{id}/default-state.
func (h *Handler) GetDefaultState(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return
	}
	state, err := h.facade.GetDefaultState(r.Context(), server.ActuatorID(id))
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, stateToDTO(state))
}

// SetDefaultState handles PUT /v1/actuators/{id}/default-state.
func (h *Handler) SetDefaultState(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return
	}
	var dto actuatorStateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err = h.facade.SetDefaultState(r.Context(), server.ActuatorID(id), dto.toState())
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type addTimeSlotRequest struct {
	Period  timePeriodDTO    `json:"period"`
	State   actuatorStateDTO `json:"state"`
	Enabled bool             `json:"enabled"`
}

// AddTimeSlot handles POST /v1/actuators/{id}/timeslots.
func (h *Handler) AddTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return
	}
	var req addTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	period, err := req.Period.toPeriod()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slotID, err := h.facade.AddTimeSlot(r.Context(), server.ActuatorID(id), period, req.State.toState(), req.Enabled)
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"slot_id": int(slotID)})
}

// RemoveTimeSlot handles DELETE /v1/actuators/{id}/timeslots/{slotID}.
func (h *Handler) RemoveTimeSlot(w http.ResponseWriter, r *http.Request) {
	id, slotID, ok := h.actuatorAndSlot(w, r)
	if !ok {
		return
	}
	err := h.facade.RemoveTimeSlot(r.Context(), server.ActuatorID(id), schedule.SlotID(slotID))
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type timePeriodPatchDTO struct {
	IntervalStart string `json:"interval_start,omitempty"`
	IntervalEnd   string `json:"interval_end,omitempty"`
	DateStart     string `json:"date_start,omitempty"`
	DateEnd       string `json:"date_end,omitempty"`
	Days          string `json:"days,omitempty"`
}

func (d timePeriodPatchDTO) toPatch() (schedule.TimePeriodPatch, error) {
	patch := schedule.TimePeriodPatch{
		IntervalStart: schedule.TimeEmpty,
		IntervalEnd:   schedule.TimeEmpty,
		DateStart:     schedule.DateEmpty,
		DateEnd:       schedule.DateEmpty,
		Days:          schedule.NoWeekdays,
	}
	if d.IntervalStart != "" {
		t, err := schedule.ParseTime(d.IntervalStart)
		if err != nil {
			return patch, err
		}
		patch.IntervalStart = t
	}
	if d.IntervalEnd != "" {
		t, err := schedule.ParseTime(d.IntervalEnd)
		if err != nil {
			return patch, err
		}
		patch.IntervalEnd = t
	}
	if d.DateStart != "" {
		dt, err := schedule.ParseDate(d.DateStart, schedule.DateMIN)
		if err != nil {
			return patch, err
		}
		patch.DateStart = dt
	}
	if d.DateEnd != "" {
		dt, err := schedule.ParseDate(d.DateEnd, schedule.DateMAX)
		if err != nil {
			return patch, err
		}
		patch.DateEnd = dt
	}
	if d.Days != "" {
		days, err := schedule.ParseWeekdaySet(d.Days)
		if err != nil {
			return patch, err
		}
		patch.Days = days
	}
	return patch, nil
}

// SetTimePeriod handles PATCH /v1/actuators/{id}/timeslots/{slotID}/period.
func (h *Handler) SetTimePeriod(w http.ResponseWriter, r *http.Request) {
	id, slotID, ok := h.actuatorAndSlot(w, r)
	if !ok {
		return
	}
	var dto timePeriodPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch, err := dto.toPatch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err = h.facade.SetTimePeriod(r.Context(), server.ActuatorID(id), schedule.SlotID(slotID), patch)
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// SetEnabled handles PUT /v1/actuators/{id}/timeslots/{slotID}/enabled.
func (h *Handler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	id, slotID, ok := h.actuatorAndSlot(w, r)
	if !ok {
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.facade.SetEnabled(r.Context(), server.ActuatorID(id), schedule.SlotID(slotID), body.Enabled)
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// SetActuatorState handles PUT /v1/actuators/{id}/timeslots/{slotID}/state.
func (h *Handler) SetActuatorState(w http.ResponseWriter, r *http.Request) {
	id, slotID, ok := h.actuatorAndSlot(w, r)
	if !ok {
		return
	}
	var dto actuatorStateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.facade.SetActuatorState(r.Context(), server.ActuatorID(id), schedule.SlotID(slotID), dto.toState())
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// AddTimeOverride handles POST /v1/actuators/{id}/timeslots/{slotID}/overrides.
func (h *Handler) AddTimeOverride(w http.ResponseWriter, r *http.Request) {
	id, slotID, ok := h.actuatorAndSlot(w, r)
	if !ok {
		return
	}
	var dto timePeriodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	period, err := dto.toPeriod()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	overrideID, err := h.facade.AddTimeOverride(r.Context(), server.ActuatorID(id), schedule.SlotID(slotID), period)
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"override_id": int(overrideID)})
}

// RemoveTimeOverride handles DELETE .../overrides/{overrideID}.
func (h *Handler) RemoveTimeOverride(w http.ResponseWriter, r *http.Request) {
	id, slotID, ok := h.actuatorAndSlot(w, r)
	if !ok {
		return
	}
	overrideID, err := idFromPath(r, "overrideID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid override id")
		return
	}
	err = h.facade.RemoveTimeOverride(r.Context(), server.ActuatorID(id), schedule.SlotID(slotID), schedule.OverrideID(overrideID))
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// SetState handles PUT /v1/actuators/{id}/state: the unscheduled bypass
// write of §6.
func (h *Handler) SetState(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return
	}
	var dto actuatorStateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err = h.facade.SetState(r.Context(), server.ActuatorID(id), dto.toState())
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// Schedule handles GET /v1/actuators/{id}/schedule?date=DD/MM/YYYY: the
// day timeline RPC of §6.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return
	}
	dateParam := r.URL.Query().Get("date")
	var date schedule.Date
	if dateParam != "" {
		date, err = schedule.ParseDate(dateParam, schedule.DateMIN)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
	}
	entries, err := h.facade.Enumerate(r.Context(), server.ActuatorID(id), date)
	if h.handleErr(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) actuatorAndSlot(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	id, err := idFromPath(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actuator id")
		return 0, 0, false
	}
	slotID, err := idFromPath(r, "slotID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot id")
		return 0, 0, false
	}
	return id, slotID, true
}

// handleErr maps a §7 typed error to an HTTP status and writes the
// response; it returns true if an error was written (caller should stop).
func (h *Handler) handleErr(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, schedule.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrTimeSlotOverlap), errors.Is(err, schedule.ErrTimeOverrideOverlap):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("unhandled facade error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
