package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/device"
)

// Scheduler runs periodic maintenance: a device-info probe of every
// configured device, tracking reachability for /status and the device
// list.
type Scheduler struct {
	cron    *cron.Cron
	client  *device.Client
	devices *device.Registry
	logger  *logrus.Logger

	mu     sync.RWMutex
	online map[string]bool
}

// NewScheduler creates a new scheduler
func NewScheduler(client *device.Client, devices *device.Registry, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		client:  client,
		devices: devices,
		logger:  logger,
		online:  make(map[string]bool),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every 5 minutes: probe device reachability
	if _, err := s.cron.AddFunc("*/5 * * * *", s.probeDevices); err != nil {
		return err
	}

	s.cron.Start()

	// Probe immediately so /status is populated from the first request
	go s.probeDevices()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// Statuses returns the last observed reachability per device id.
func (s *Scheduler) Statuses() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make(map[string]bool, len(s.online))
	for id, ok := range s.online {
		statuses[id] = ok
	}
	return statuses
}

// probeDevices checks every configured device and logs reachability
// changes.
func (s *Scheduler) probeDevices() {
	for _, id := range s.devices.IDs() {
		_, deviceBase, err := s.devices.Resolve(id)
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		info, err := s.client.DeviceInfo(ctx, deviceBase)
		cancel()

		reachable := err == nil

		s.mu.Lock()
		previous, known := s.online[id]
		s.online[id] = reachable
		s.mu.Unlock()

		if !known || previous != reachable {
			entry := s.logger.WithField("device", id)
			if reachable {
				entry.WithField("model", info.ModelName).Info("Device online")
			} else {
				entry.WithError(err).Warn("Device offline")
			}
		}
	}
}
