// Package api is the HTTP transport for the timer service. Handlers parse
// and validate the external representation, invoke the lifecycle service,
// and translate error kinds into status codes; no transition logic lives
// here.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pottypal/potty-timer/internal/api/respond"
	"github.com/pottypal/potty-timer/internal/api/validate"
	"github.com/pottypal/potty-timer/internal/model"
	"github.com/pottypal/potty-timer/internal/services"
)

// Stable error messages surfaced to clients. Clients match on these, so
// they must not drift per-handler.
const (
	msgTimerNotFound   = "Timer not found"
	msgInvalidDuration = "Invalid duration. Must be a positive number."
)

// TimerHandler is a thin HTTP transport over TimerService.
type TimerHandler struct {
	svc *services.TimerService
}

func NewTimerHandler(svc *services.TimerService) *TimerHandler { return &TimerHandler{svc: svc} }

type durationRequest struct {
	Duration *float64 `json:"duration"`
}

// ListTimers GET /timers
func (h *TimerHandler) ListTimers(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to fetch timers")
		return
	}
	if ts == nil {
		ts = []*model.Timer{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timers":  ts,
		"count":   len(ts),
	})
}

// CreateTimer POST /timers
func (h *TimerHandler) CreateTimer(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, msgInvalidDuration, err.Error())
		return
	}
	if err := validate.Duration(req.Duration); err != nil {
		respond.WriteBadRequest(w, msgInvalidDuration, err.Error())
		return
	}
	t, err := h.svc.Create(r.Context(), int64(*req.Duration))
	if err != nil {
		h.writeError(w, err, "Failed to create timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
		"message": "Timer created successfully",
	})
}

// GetCurrentTimer GET /timers/current
func (h *TimerHandler) GetCurrentTimer(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Current(r.Context())
	if err != nil {
		h.writeError(w, err, "Failed to fetch timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
	})
}

// GetTimer GET /timers/{timerId}
func (h *TimerHandler) GetTimer(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), mux.Vars(r)["timerId"])
	if err != nil {
		h.writeError(w, err, "Failed to fetch timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
	})
}

// StartTimer PUT /timers/{timerId}/start
func (h *TimerHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Start(r.Context(), mux.Vars(r)["timerId"])
	if err != nil {
		h.writeError(w, err, "Failed to start timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
		"message": "Timer started",
	})
}

// PauseTimer PUT /timers/{timerId}/pause
func (h *TimerHandler) PauseTimer(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Pause(r.Context(), mux.Vars(r)["timerId"])
	if err != nil {
		h.writeError(w, err, "Failed to pause timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
		"message": "Timer paused",
	})
}

// ResetTimer PUT /timers/{timerId}/reset
func (h *TimerHandler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Reset(r.Context(), mux.Vars(r)["timerId"])
	if err != nil {
		h.writeError(w, err, "Failed to reset timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
		"message": "Timer reset",
	})
}

// ChangeDuration PUT /timers/{timerId}/duration
func (h *TimerHandler) ChangeDuration(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, msgInvalidDuration, err.Error())
		return
	}
	if err := validate.Duration(req.Duration); err != nil {
		respond.WriteBadRequest(w, msgInvalidDuration, err.Error())
		return
	}
	t, err := h.svc.ChangeDuration(r.Context(), mux.Vars(r)["timerId"], int64(*req.Duration))
	if err != nil {
		h.writeError(w, err, "Failed to update timer duration")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
		"message": "Timer duration updated",
	})
}

// UpdateTimer PUT /timers/{timerId} — administrative partial-field merge.
func (h *TimerHandler) UpdateTimer(w http.ResponseWriter, r *http.Request) {
	var u model.TimerUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON", err.Error())
		return
	}
	t, err := h.svc.Update(r.Context(), mux.Vars(r)["timerId"], u)
	if err != nil {
		h.writeError(w, err, "Failed to update timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"timer":   t,
		"message": "Timer updated",
	})
}

// DeleteTimer DELETE /timers/{timerId}
func (h *TimerHandler) DeleteTimer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["timerId"]); err != nil {
		h.writeError(w, err, "Failed to delete timer")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Timer deleted successfully",
	})
}

// writeError maps service error kinds onto transport statuses. This is the
// only place error kind is translated to a status code.
func (h *TimerHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case model.IsNotFound(err):
		respond.WriteNotFound(w, msgTimerNotFound, err.Error())
	case model.IsInvalidArgument(err):
		respond.WriteBadRequest(w, msgInvalidDuration, err.Error())
	default:
		respond.WriteInternalError(w, fallback, errDetails(err))
	}
}

func errDetails(err error) string {
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}
