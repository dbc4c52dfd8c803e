package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	apperrors "github.com/Vetlyst2025/Vetlyst102525/pkg/errors"
)

// AppointmentService accepts appointment-request forms. Requests are
// validated, assigned an ID, logged, and held in process memory; no booking
// or notification is performed.
type AppointmentService struct {
	mu       sync.Mutex
	requests []entities.AppointmentRequest
	now      func() time.Time
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService() *AppointmentService {
	return &AppointmentService{
		now: time.Now,
	}
}

// Submit validates and records an appointment request, returning the
// acknowledged request with its assigned ID.
func (s *AppointmentService) Submit(ctx context.Context, req entities.AppointmentRequest) (entities.AppointmentRequest, error) {
	if strings.TrimSpace(req.ClinicName) == "" {
		return entities.AppointmentRequest{}, apperrors.NewValidationError("clinic name is required")
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return entities.AppointmentRequest{}, apperrors.NewValidationError("owner name is required")
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return entities.AppointmentRequest{}, apperrors.NewValidationError("a valid email is required")
	}
	if strings.TrimSpace(req.PetName) == "" {
		return entities.AppointmentRequest{}, apperrors.NewValidationError("pet name is required")
	}

	req.ID = uuid.NewString()
	req.ReceivedAt = s.now()

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	log.Info().
		Str("request_id", req.ID).
		Str("clinic", req.ClinicName).
		Msg("appointment request received")

	return req, nil
}

// Pending returns a copy of the requests received so far.
func (s *AppointmentService) Pending() []entities.AppointmentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.AppointmentRequest(nil), s.requests...)
}
