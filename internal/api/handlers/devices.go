package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/device"
	"github.com/tapdeck/tapdeck/internal/scheduler"
)

// DevicesHandler handles device listing and live identity probes
type DevicesHandler struct {
	devices *device.Registry
	client  *device.Client
	monitor *scheduler.Scheduler
	logger  *logrus.Logger
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(devices *device.Registry, client *device.Client, monitor *scheduler.Scheduler, logger *logrus.Logger) *DevicesHandler {
	return &DevicesHandler{
		devices: devices,
		client:  client,
		monitor: monitor,
		logger:  logger,
	}
}

// deviceEntry is one row of the device list.
type deviceEntry struct {
	ID     string `json:"id"`
	Online bool   `json:"online"`
}

// List handles GET /api/devices
func (h *DevicesHandler) List(w http.ResponseWriter, r *http.Request) {
	online := h.monitor.Statuses()

	entries := make([]deviceEntry, 0, len(h.devices.IDs()))
	for _, id := range h.devices.IDs() {
		entries = append(entries, deviceEntry{ID: id, Online: online[id]})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Info handles GET /api/devices/{id}/info with a live probe
func (h *DevicesHandler) Info(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, deviceBase, err := h.devices.Resolve(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	info, err := h.client.DeviceInfo(r.Context(), deviceBase)
	if err != nil {
		h.logger.WithError(err).WithField("device", id).Warn("Device probe failed")
		http.Error(w, "Device unreachable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":           id,
		"modelName":    info.ModelName,
		"friendlyName": info.FriendlyName,
		"serialNumber": info.SerialNumber,
		"powerMode":    info.PowerMode,
	})
}
