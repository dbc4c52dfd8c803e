package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Vetlyst2025/Vetlyst102525/internal/application/services"
	queryservices "github.com/Vetlyst2025/Vetlyst102525/internal/query/services"
)

// ClinicHandler handles directory HTTP requests.
type ClinicHandler struct {
	resolver services.ClinicResolver
}

// NewClinicHandler creates a new clinic handler.
func NewClinicHandler(resolver services.ClinicResolver) *ClinicHandler {
	return &ClinicHandler{
		resolver: resolver,
	}
}

// ListClinics handles GET /api/clinics. Query parameters: q (free text),
// emergency (true/1), sort (name|rating). The response carries the data
// provenance so the client can tell a fallback-backed list from a live one,
// and an empty filtered list from an empty data set.
func (h *ClinicHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	set, err := h.resolver.Resolve(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrAllSourcesExhausted) {
			respondWithError(w, http.StatusServiceUnavailable, "clinic data is temporarily unavailable, please try again later")
			return
		}
		respondWithError(w, http.StatusBadGateway, "failed to resolve clinic data")
		return
	}

	query := r.URL.Query()
	params := queryservices.ViewParams{
		SearchTerm:    query.Get("q"),
		EmergencyOnly: query.Get("emergency") == "true" || query.Get("emergency") == "1",
		SortBy:        queryservices.ParseSortMode(query.Get("sort")),
	}

	clinics := queryservices.ApplyView(set.Clinics, params)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"clinics": clinics,
		"count":   len(clinics),
		"total":   len(set.Clinics),
		"source":  set.Source,
	})
}

// GetClinic handles GET /api/clinics/{name}: detail lookup by
// case-insensitive clinic name.
func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "clinic name is required")
		return
	}

	set, err := h.resolver.Resolve(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrAllSourcesExhausted) {
			respondWithError(w, http.StatusServiceUnavailable, "clinic data is temporarily unavailable, please try again later")
			return
		}
		respondWithError(w, http.StatusBadGateway, "failed to resolve clinic data")
		return
	}

	for _, clinic := range set.Clinics {
		if strings.EqualFold(clinic.Name, name) {
			respondWithJSON(w, http.StatusOK, clinic)
			return
		}
	}

	respondWithError(w, http.StatusNotFound, "clinic not found")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
