package usecase

import (
	"context"
	"io"
	"log/slog"

	"usermanager/src/core/ports"
)

// Health status values.
const (
	StatusOK        = "ok"
	StatusDegraded  = "degraded"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthService reports whether the storage behind the user service is reachable.
type HealthService struct {
	repo ports.Repository
	log  *slog.Logger
}

// NewHealthService creates a new HealthService. repo may be nil, in which
// case only the overall status is reported.
func NewHealthService(repo ports.Repository, log *slog.Logger) *HealthService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HealthService{
		repo: repo,
		log:  log,
	}
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
		Status:     StatusOK,
		Components: make(map[string]ComponentHealth),
	}

	if s.repo != nil {
		if err := s.repo.Health(ctx); err != nil {
			s.log.Warn("repository unhealthy", "error", err)
			status.Status = StatusDegraded
			status.Components["repository"] = ComponentHealth{
				Status:  StatusUnhealthy,
				Message: err.Error(),
			}
		} else {
			status.Components["repository"] = ComponentHealth{Status: StatusHealthy}
		}
	}

	return status
}
