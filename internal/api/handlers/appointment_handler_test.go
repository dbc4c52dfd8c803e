package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vetlyst2025/Vetlyst102525/internal/api/handlers"
	"github.com/Vetlyst2025/Vetlyst102525/internal/application/services"
)

func TestAppointmentHandler_SubmitRequest_Success(t *testing.T) {
	handler := handlers.NewAppointmentHandler(services.NewAppointmentService())

	body := `{"clinicName":"Badger Animal Hospital","ownerName":"Pat Smith","email":"pat@example.com","petName":"Biscuit","reason":"annual checkup"}`
	req := httptest.NewRequest("POST", "/api/appointment-requests", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitRequest(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "received", response["status"])
	assert.NotEmpty(t, response["id"])
}

func TestAppointmentHandler_SubmitRequest_ValidationFailure(t *testing.T) {
	handler := handlers.NewAppointmentHandler(services.NewAppointmentService())

	body := `{"clinicName":"Badger Animal Hospital","email":"pat@example.com"}`
	req := httptest.NewRequest("POST", "/api/appointment-requests", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitRequest(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAppointmentHandler_SubmitRequest_MalformedBody(t *testing.T) {
	handler := handlers.NewAppointmentHandler(services.NewAppointmentService())

	req := httptest.NewRequest("POST", "/api/appointment-requests", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.SubmitRequest(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
