package http

import (
	"net/http"

	"healthflow-backend/internal/delivery/http/handler"
	"healthflow-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	appointmentHandler  *handler.AppointmentHandler
	availabilityHandler *handler.AvailabilityHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	availabilityHandler *handler.AvailabilityHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		appointmentHandler:  appointmentHandler,
		availabilityHandler: availabilityHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public doctor routes (slot listing is browsable without an account)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.HandleFunc("/{doctorId}/available-slots", r.appointmentHandler.GetAvailableSlots).Methods(http.MethodGet)
	doctors.HandleFunc("/{doctorId}/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)

	// Availability management (doctor or admin)
	availability := api.PathPrefix("/doctors").Subrouter()
	availability.Use(r.authMiddleware.Authenticate)
	availability.Use(middleware.RequireDoctorOrAdmin)
	availability.HandleFunc("/{doctorId}/availability", r.availabilityHandler.SetAvailability).Methods(http.MethodPut)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/patient/{patientId}", r.appointmentHandler.GetByPatient).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorId}", r.appointmentHandler.GetByDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/clinic/{clinicId}", r.appointmentHandler.GetByClinic).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)

	// Staff-only transitions (doctor, secretary, admin)
	staff := api.PathPrefix("/appointments").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/{id}/approve", r.appointmentHandler.ApproveAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/{id}/decline", r.appointmentHandler.DeclineAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
