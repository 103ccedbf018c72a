package http

import (
	"net/http"

	"healthsync/internal/delivery/http/handler"
	"healthsync/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	hospitalHandler     *handler.HospitalHandler
	scheduleHandler     *handler.HospitalScheduleHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	medicineHandler     *handler.MedicineHandler
	prescriptionHandler *handler.PrescriptionHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	hospitalHandler *handler.HospitalHandler,
	scheduleHandler *handler.HospitalScheduleHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicineHandler *handler.MedicineHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		hospitalHandler:     hospitalHandler,
		scheduleHandler:     scheduleHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		medicineHandler:     medicineHandler,
		prescriptionHandler: prescriptionHandler,
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

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Prescription detail (protected - either party, ownership checked in the usecase)
	prescriptions := api.PathPrefix("/prescriptions").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.HandleFunc("/{id}", r.prescriptionHandler.GetPrescription).Methods(http.MethodGet)

	// Public browsing routes
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{doctorId}/schedules", r.scheduleHandler.GetSchedulesByDoctor).Methods(http.MethodGet)
	api.HandleFunc("/hospitals", r.hospitalHandler.GetAllHospitals).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/{id}", r.hospitalHandler.GetHospital).Methods(http.MethodGet)
	api.HandleFunc("/appointments/timeslots", r.appointmentHandler.GetAvailableTimeslots).Methods(http.MethodGet)
	api.HandleFunc("/medicines", r.medicineHandler.GetMedicines).Methods(http.MethodGet)
	api.HandleFunc("/medicines/{id}", r.medicineHandler.GetMedicine).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetMyProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)
	patient.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/request", r.appointmentHandler.RequestAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/prescriptions", r.prescriptionHandler.GetMyPrescriptions).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateMyProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/schedules", r.scheduleHandler.CreateSchedule).Methods(http.MethodPost)
	doctor.HandleFunc("/schedules", r.scheduleHandler.GetMySchedules).Methods(http.MethodGet)
	doctor.HandleFunc("/schedules/{id}", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	doctor.HandleFunc("/schedules/{id}", r.scheduleHandler.UpdateSchedule).Methods(http.MethodPut)
	doctor.HandleFunc("/schedules/{id}", r.scheduleHandler.DeleteSchedule).Methods(http.MethodDelete)
	doctor.HandleFunc("/availability/templates", r.availabilityHandler.CreateTemplate).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/templates", r.availabilityHandler.GetMyTemplates).Methods(http.MethodGet)
	doctor.HandleFunc("/availability/templates/{id}", r.availabilityHandler.UpdateTemplate).Methods(http.MethodPut)
	doctor.HandleFunc("/availability/templates/{id}", r.availabilityHandler.DeleteTemplate).Methods(http.MethodDelete)
	doctor.HandleFunc("/availability/exceptions", r.availabilityHandler.CreateException).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/exceptions", r.availabilityHandler.GetMyExceptions).Methods(http.MethodGet)
	doctor.HandleFunc("/availability/exceptions/{id}", r.availabilityHandler.UpdateException).Methods(http.MethodPut)
	doctor.HandleFunc("/availability/exceptions/{id}", r.availabilityHandler.DeleteException).Methods(http.MethodDelete)
	doctor.HandleFunc("/availability/preview", r.availabilityHandler.PreviewSlots).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/settings", r.appointmentHandler.GetMySettings).Methods(http.MethodGet)
	doctor.HandleFunc("/settings", r.appointmentHandler.UpdateMySettings).Methods(http.MethodPut)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.WritePrescription).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.GetWrittenPrescriptions).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{patientId}/prescriptions", r.prescriptionHandler.GetPatientPrescriptions).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/hospitals", r.hospitalHandler.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals/{id}", r.hospitalHandler.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/hospitals/{id}", r.hospitalHandler.DeleteHospital).Methods(http.MethodDelete)
	admin.HandleFunc("/medicines", r.medicineHandler.CreateMedicine).Methods(http.MethodPost)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.UpdateMedicine).Methods(http.MethodPut)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.DeleteMedicine).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
