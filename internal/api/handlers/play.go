package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/controllers"
	"github.com/tapdeck/tapdeck/internal/device"
	"github.com/tapdeck/tapdeck/internal/models"
)

// PlayHandler handles playback requests: the tag reader's
// POST /play/{mediaId} and the direct POST /api/play.
type PlayHandler struct {
	db           *models.Database
	playbackCtrl *controllers.PlaybackController
	logger       *logrus.Logger
}

// NewPlayHandler creates a new play handler
func NewPlayHandler(db *models.Database, playbackCtrl *controllers.PlaybackController, logger *logrus.Logger) *PlayHandler {
	return &PlayHandler{
		db:           db,
		playbackCtrl: playbackCtrl,
		logger:       logger,
	}
}

// PlayStored plays a library entry by its opaque id. This is the endpoint
// written onto NFC tags; the reader appends its deviceId.
func (h *PlayHandler) PlayStored(w http.ResponseWriter, r *http.Request) {
	mediaID := r.PathValue("mediaId")
	deviceID := r.URL.Query().Get("deviceId")

	media, err := h.db.GetMediaByID(mediaID)
	if err != nil {
		if models.IsNotFound(err) {
			http.Error(w, "Unknown media id", http.StatusNotFound)
			return
		}
		h.logger.WithError(err).Error("Failed to load media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.play(w, r, media.Ref, deviceID)
}

// directPlayRequest is the body of POST /api/play.
type directPlayRequest struct {
	ChannelID string `json:"channelId"`
	ContentID string `json:"contentId"`
	MediaType string `json:"mediaType"`
	Title     string `json:"title"`
	DeviceID  string `json:"deviceId"`
}

// PlayDirect plays an ad-hoc reference without storing it.
func (h *PlayHandler) PlayDirect(w http.ResponseWriter, r *http.Request) {
	var req directPlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.ChannelID == "" || req.ContentID == "" {
		http.Error(w, "channelId and contentId are required", http.StatusBadRequest)
		return
	}

	ref := models.MediaReference{
		ChannelID: req.ChannelID,
		ContentID: req.ContentID,
		MediaType: req.MediaType,
		Title:     req.Title,
	}
	h.play(w, r, ref, req.DeviceID)
}

func (h *PlayHandler) play(w http.ResponseWriter, r *http.Request, ref models.MediaReference, deviceID string) {
	if err := h.playbackCtrl.Play(r.Context(), ref, deviceID); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"channel_id": ref.ChannelID,
			"content_id": ref.ContentID,
			"device":     deviceID,
		}).Error("Playback failed")

		// Surface which step of the sequence failed when the executor
		// got that far.
		var cmdErr *device.CommandError
		if errors.As(err, &cmdErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":      err.Error(),
				"step":       cmdErr.Step,
				"action":     cmdErr.Action,
				"statusCode": cmdErr.StatusCode,
			})
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"title":  ref.Title,
	})
}
