package api

import (
	"github.com/gorilla/mux"

	"github.com/pottypal/potty-timer/internal/api/recovery"
	"github.com/pottypal/potty-timer/internal/services"
)

// NewRouter wires HTTP routes to handlers. isHealthy may be nil, in which
// case /health always reports healthy.
func NewRouter(svc *services.TimerService, isHealthy func() bool) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	timer := NewTimerHandler(svc)
	root.HandleFunc("/timers", timer.ListTimers).Methods("GET")
	root.HandleFunc("/timers", timer.CreateTimer).Methods("POST")
	// "current" must be registered before the {timerId} routes so it is not
	// captured as an id.
	root.HandleFunc("/timers/current", timer.GetCurrentTimer).Methods("GET")
	root.HandleFunc("/timers/{timerId}", timer.GetTimer).Methods("GET")
	root.HandleFunc("/timers/{timerId}/start", timer.StartTimer).Methods("PUT")
	root.HandleFunc("/timers/{timerId}/pause", timer.PauseTimer).Methods("PUT")
	root.HandleFunc("/timers/{timerId}/reset", timer.ResetTimer).Methods("PUT")
	root.HandleFunc("/timers/{timerId}/duration", timer.ChangeDuration).Methods("PUT")
	root.HandleFunc("/timers/{timerId}", timer.UpdateTimer).Methods("PUT")
	root.HandleFunc("/timers/{timerId}", timer.DeleteTimer).Methods("DELETE")

	healthHandler := NewHealthHandler(isHealthy)
	root.HandleFunc("/health", healthHandler.CheckHealth).Methods("GET")

	return root
}
