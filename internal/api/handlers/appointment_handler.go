package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Vetlyst2025/Vetlyst102525/internal/application/services"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	apperrors "github.com/Vetlyst2025/Vetlyst102525/pkg/errors"
)

// AppointmentHandler handles appointment-request submissions.
type AppointmentHandler struct {
	service *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// SubmitRequest handles POST /api/appointment-requests. The request is
// acknowledged locally; nothing is booked or delivered.
func (h *AppointmentHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req entities.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ack, err := h.service.Submit(r.Context(), req)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeValidation {
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to record appointment request")
		return
	}

	respondWithJSON(w, http.StatusAccepted, map[string]interface{}{
		"id":     ack.ID,
		"status": "received",
	})
}
