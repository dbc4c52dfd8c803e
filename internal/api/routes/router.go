package routes

import (
	"net/http"

	"github.com/Vetlyst2025/Vetlyst102525/internal/api/handlers"
	"github.com/Vetlyst2025/Vetlyst102525/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	clinicHandler      *handlers.ClinicHandler
	appointmentHandler *handlers.AppointmentHandler
}

// NewRouter creates a new router
func NewRouter(
	clinicHandler *handlers.ClinicHandler,
	appointmentHandler *handlers.AppointmentHandler,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		clinicHandler:      clinicHandler,
		appointmentHandler: appointmentHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /api/clinics", r.clinicHandler.ListClinics)
	r.mux.HandleFunc("GET /api/clinics/{name}", r.clinicHandler.GetClinic)
	r.mux.HandleFunc("POST /api/appointment-requests", r.appointmentHandler.SubmitRequest)

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)
	return handler
}
