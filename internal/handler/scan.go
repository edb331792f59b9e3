package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/beptroly/notifier/internal/expiry"
	"github.com/beptroly/notifier/internal/websocket"
)

// ScanHandler exposes the expiry scan as an HTTP trigger for external cron.
type ScanHandler struct {
	service *expiry.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewScanHandler(service *expiry.Service, hub *websocket.Hub, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{service: service, hub: hub, logger: logger}
}

// CheckExpiry handles GET/POST /check-expiry.
func (h *ScanHandler) CheckExpiry(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "internal_error",
			"detail": "push transport not configured",
		})
		return
	}

	result, err := h.service.Run(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("expiry scan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "internal_error",
			"detail": err.Error(),
		})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewScanEvent(string(result.Status), result.SentCount, result.TotalCandidates))
	}

	writeJSON(w, http.StatusOK, result)
}
