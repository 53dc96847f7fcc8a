package usecase

import (
	"context"
	"log/slog"

	"hattournament/src/core/ports"
)

// HealthService reports whether the service and its storage are usable.
type HealthService struct {
	store ports.Repository
	log   *slog.Logger
}

// NewHealthService creates a new HealthService.
func NewHealthService(store ports.Repository, log *slog.Logger) *HealthService {
	return &HealthService{store: store, log: log}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check performs a health check of all application components.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if err := s.store.Health(ctx); err != nil {
		s.log.Warn("storage health check failed", "error", err)
		status.Status = "degraded"
		status.Components["storage"] = ComponentHealth{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	} else {
		status.Components["storage"] = ComponentHealth{Status: "healthy"}
	}

	return status
}

// Health reduces Check to an error. hatctl health --local calls it through
// ports.ExternalService.
func (s *HealthService) Health(ctx context.Context) error {
	if st := s.Check(ctx); st.Status != "ok" {
		return &healthError{status: st.Status}
	}
	return nil
}

var _ ports.ExternalService = (*HealthService)(nil)

type healthError struct {
	status string
}

func (e *healthError) Error() string {
	return "health check failed: " + e.status
}
