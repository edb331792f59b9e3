package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/beptroly/notifier/internal/model"
	"github.com/beptroly/notifier/internal/push"
	"github.com/beptroly/notifier/internal/store"
)

// DeviceHandler lets the app backend register and revoke push tokens.
type DeviceHandler struct {
	users  *store.UserStore
	web    *push.WebPushSender
	logger *slog.Logger
}

func NewDeviceHandler(users *store.UserStore, web *push.WebPushSender, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{users: users, web: web, logger: logger}
}

type registerDeviceRequest struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// Register handles POST /api/devices.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.UserID == 0 || len(req.Token) <= model.MinTokenLength {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and a plausible token are required"})
		return
	}

	user, err := h.users.GetByID(req.UserID)
	if err != nil {
		h.logger.Error("get user for device registration", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register device"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	updated, err := h.users.SetToken(req.UserID, req.Token)
	if err != nil {
		h.logger.Error("set device token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register device"})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

type unregisterDeviceRequest struct {
	UserID int64 `json:"user_id"`
}

// Unregister handles DELETE /api/devices.
func (h *DeviceHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	var req unregisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.UserID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	if err := h.users.ClearToken(req.UserID); err != nil {
		h.logger.Error("clear device token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to unregister device"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VAPIDKey handles GET /api/push/vapid-key. Browser clients need the public
// key to create the subscription they then register as their token.
func (h *DeviceHandler) VAPIDKey(w http.ResponseWriter, r *http.Request) {
	if h.web == nil || !h.web.Configured() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "web push not configured"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.web.VAPIDPublicKey()})
}
