package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"networkd-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// HealthService provides health check functionality
type HealthService struct {
	mu                   sync.RWMutex
	clock                interfaces.Clock
	logger               *logrus.Logger
	startTime            time.Time
	sourceHealthy        bool
	sourceError          error
	specSource           string
	unitDirectory        string
	reconciledInterfaces int64
	failedInterfaces     int64
}

// HealthStatus represents health check status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response struct
type HealthResponse struct {
	Status     HealthStatus           `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	LastCheck  string                 `json:"last_check"`
	Components map[string]interface{} `json:"components"`
	Statistics map[string]interface{} `json:"statistics"`
}

// NewHealthService creates a new HealthService
func NewHealthService(clock interfaces.Clock, logger *logrus.Logger) *HealthService {
	return &HealthService{
		clock:         clock,
		logger:        logger,
		startTime:     clock.Now(),
		sourceHealthy: false,
	}
}

// UpdateSourceHealth updates the spec source health status
func (h *HealthService) UpdateSourceHealth(healthy bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sourceHealthy = healthy
	h.sourceError = err
}

// IncrementReconciledInterfaces increments the reconciled interface count
func (h *HealthService) IncrementReconciledInterfaces() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reconciledInterfaces++
}

// IncrementFailedInterfaces increments the failed interface count
func (h *HealthService) IncrementFailedInterfaces() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.failedInterfaces++
}

// SetSpecSource sets the spec source backend in use
func (h *HealthService) SetSpecSource(backend string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.specSource = backend
}

// SetUnitDirectory sets the managed unit directory
func (h *HealthService) SetUnitDirectory(dir string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unitDirectory = dir
}

// ServeHTTP handles the HTTP health check endpoint
func (h *HealthService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := h.buildHealthResponse()

	// Set HTTP status code based on health status
	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("failed to encode health check response")
	}
}

// buildHealthResponse constructs the health check response
func (h *HealthService) buildHealthResponse() HealthResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	now := h.clock.Now()

	// Determine overall status
	status := h.determineOverallStatus()

	// Component status
	components := map[string]interface{}{
		"spec_source": map[string]interface{}{
			"backend": h.specSource,
			"healthy": h.sourceHealthy,
			"error":   h.formatError(h.sourceError),
		},
		"unit_directory": map[string]interface{}{
			"path": h.unitDirectory,
		},
	}

	// Statistics information
	statistics := map[string]interface{}{
		"reconciled_interfaces": h.reconciledInterfaces,
		"failed_interfaces":     h.failedInterfaces,
		"uptime":                h.formatUptime(now.Sub(h.startTime)),
	}

	return HealthResponse{
		Status:     status,
		Timestamp:  now.Format(time.RFC3339),
		LastCheck:  now.Format(time.RFC3339),
		Components: components,
		Statistics: statistics,
	}
}

// determineOverallStatus determines the overall health status
func (h *HealthService) determineOverallStatus() HealthStatus {
	// If the spec source is unreachable, overall status is unhealthy
	if !h.sourceHealthy {
		return StatusUnhealthy
	}

	// If failed reconciliations are 50% or more, status is degraded
	if h.reconciledInterfaces > 0 && h.failedInterfaces > 0 {
		failureRate := float64(h.failedInterfaces) / float64(h.reconciledInterfaces+h.failedInterfaces)
		if failureRate >= 0.5 {
			return StatusDegraded
		}
	}

	return StatusHealthy
}

// formatError formats an error to string
func (h *HealthService) formatError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// formatUptime formats uptime duration to human-readable format
func (h *HealthService) formatUptime(duration time.Duration) string {
	days := int(duration.Hours()) / 24
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd%dh%dm", days, hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	} else {
		return fmt.Sprintf("%dm", minutes)
	}
}
