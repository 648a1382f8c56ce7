package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/models"
	"github.com/tapdeck/tapdeck/internal/scheduler"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db      *models.Database
	monitor *scheduler.Scheduler
	logger  *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, monitor *scheduler.Scheduler, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:      db,
		monitor: monitor,
		logger:  logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalMedia     int             `json:"total_media"`
	MediaByChannel map[string]int  `json:"media_by_channel"`
	MediaByOwner   map[string]int  `json:"media_by_owner"`
	DevicesOnline  map[string]bool `json:"devices_online"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	medias, err := h.db.GetAllMedias()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		TotalMedia:     len(medias),
		MediaByChannel: make(map[string]int),
		MediaByOwner:   make(map[string]int),
		DevicesOnline:  h.monitor.Statuses(),
	}

	for _, media := range medias {
		response.MediaByChannel[media.Ref.ChannelID]++
		if media.Owner != "" {
			response.MediaByOwner[media.Owner]++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
