package handlers

import (
	"net/http"

	"github.com/halalhustle/gatekeeper/internal/models"
	"github.com/halalhustle/gatekeeper/internal/services"
)

// StatusHandler serves the ops API view of the moderation engine.
type StatusHandler struct {
	engine *services.ModerationEngine
}

func NewStatusHandler(engine *services.ModerationEngine) *StatusHandler {
	return &StatusHandler{engine: engine}
}

func (h *StatusHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(h.engine.Stats()))
}
