package http

import (
	"net/http"

	"hospital-portal/internal/delivery/http/handler"
	"hospital-portal/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	messageHandler      *handler.MessageHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	healthRecordHandler *handler.HealthRecordHandler
	dashboardHandler    *handler.DashboardHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	messageHandler *handler.MessageHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	healthRecordHandler *handler.HealthRecordHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		messageHandler:      messageHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		healthRecordHandler: healthRecordHandler,
		dashboardHandler:    dashboardHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public site
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/messages", r.messageHandler.CreateMessage).Methods(http.MethodPost)
	api.HandleFunc("/payments/qr", r.appointmentHandler.PaymentQR).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/patient/signup", r.authHandler.PatientSignup).Methods(http.MethodPost)
	auth.HandleFunc("/patient/login", r.authHandler.PatientLogin).Methods(http.MethodPost)
	auth.HandleFunc("/admin/login", r.authHandler.AdminLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Patient portal (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/portal", r.patientHandler.GetPortal).Methods(http.MethodGet)
	patient.HandleFunc("/records", r.healthRecordHandler.GetMyRecords).Methods(http.MethodGet)
	patient.HandleFunc("/records", r.healthRecordHandler.UploadRecord).Methods(http.MethodPost)
	patient.HandleFunc("/records/{id}", r.healthRecordHandler.DeleteRecord).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/stream", r.dashboardHandler.Stream).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Appointment workflow (admin)
	admin.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/status", r.dashboardHandler.SetAppointmentStatus).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}", r.dashboardHandler.DeleteAppointment).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{id}/whatsapp", r.dashboardHandler.AppointmentWhatsApp).Methods(http.MethodGet)

	// Message workflow (admin)
	admin.HandleFunc("/messages/{id}/status", r.dashboardHandler.SetMessageStatus).Methods(http.MethodPut)
	admin.HandleFunc("/messages/{id}/whatsapp", r.dashboardHandler.MessageWhatsApp).Methods(http.MethodGet)

	// Doctor and patient management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.dashboardHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
