package service

import (
	"context"
	"time"
)

// Health status constants
const (
	StatusHealthy      = "healthy"
	StatusDegraded     = "degraded"
	StatusUnhealthy    = "unhealthy"
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// HealthCheckTimeout bounds the store ping
const HealthCheckTimeout = 2 * time.Second

// HealthStatus represents the overall health status of the application
type HealthStatus struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
}

// Pinger is satisfied by the store handle
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ConnectionChecker is satisfied by the queue connection
type ConnectionChecker interface {
	IsConnected() bool
}

// HealthChecker handles health check operations
type HealthChecker struct {
	db      Pinger
	queue   ConnectionChecker
	version string
}

// NewHealthService creates a new HealthChecker instance. queue is nil when
// events are not published.
func NewHealthService(db Pinger, queue ConnectionChecker, version string) *HealthChecker {
	return &HealthChecker{
		db:      db,
		queue:   queue,
		version: version,
	}
}

// checkDatabase verifies store connectivity with a timeout
func (h *HealthChecker) checkDatabase(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return StatusDisconnected
	}

	return StatusConnected
}

// checkQueue reports the state of the event queue connection
func (h *HealthChecker) checkQueue() string {
	if !h.queue.IsConnected() {
		return StatusDisconnected
	}
	return StatusConnected
}

// determineOverallStatus calculates the overall health status based on service statuses
func (h *HealthChecker) determineOverallStatus(services map[string]string) string {
	// If database is disconnected, system is unhealthy
	if services["database"] == StatusDisconnected {
		return StatusUnhealthy
	}

	// If queue is disconnected but database is connected, system is degraded
	if services["queue"] == StatusDisconnected {
		return StatusDegraded
	}

	return StatusHealthy
}

// CheckHealth performs health checks on all dependencies and returns the overall status
func (h *HealthChecker) CheckHealth(ctx context.Context) *HealthStatus {
	services := map[string]string{
		"database": h.checkDatabase(ctx),
	}
	if h.queue != nil {
		services["queue"] = h.checkQueue()
	}

	return &HealthStatus{
		Status:    h.determineOverallStatus(services),
		Services:  services,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
}
