package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/chat"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/realtime"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barber-booking/internal/usecase/barber"
)

// AvatarPath is where the in-process object store's pictures are served.
const AvatarPath = "/api/public/avatars"

// Deps carries the infrastructure built in main. Barbers may be a cached
// view of the same store that backs Appointments.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	Clock  timezone.Clock

	Barbers      domain.BarberRegistry
	Appointments domain.AppointmentStore
	Users        domain.UserStore
	AuditLogs    domain.AuditStore

	Sessions chat.SessionStore
	Objects  storage.ObjectStore

	Audit   audit.Sink
	Hub     *realtime.Hub
	Metrics *metrics.Metrics
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	var sink audit.Sink = audit.Nop{}
	if d.Audit != nil {
		sink = d.Audit
	}
	var events realtime.Publisher = realtime.Nop{}
	if d.Hub != nil {
		events = d.Hub
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		d.Metrics.Middleware(),
	)

	// ======================================================
	// USE CASES - BARBERS
	// ======================================================
	listBarbersUC := ucBarber.NewListBarbers(d.Barbers)
	createBarberUC := ucBarber.NewCreateBarber(d.Barbers, sink)
	updateBarberUC := ucBarber.NewUpdateBarber(d.Barbers, sink)
	deleteBarberUC := ucBarber.NewDeleteBarber(d.Barbers, sink)
	uploadAvatarUC := ucBarber.NewUploadAvatar(d.Barbers, d.Objects, sink)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(d.Barbers, d.Appointments, d.Clock)
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		availabilityUC,
		d.Appointments,
		sink,
		events,
		d.Metrics,
	)
	changeStatusUC := ucAppointment.NewChangeStatus(d.Appointments, sink, events)
	rescheduleUC := ucAppointment.NewReschedule(d.Appointments, createAppointmentUC, sink, d.Log)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(d.Appointments, sink, events)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments)
	dashboardUC := ucAppointment.NewDashboard(d.Barbers, d.Appointments, d.Clock)

	agent := chat.NewAgent(
		d.Barbers,
		availabilityUC,
		createAppointmentUC,
		d.Sessions,
		d.Clock,
		d.Metrics,
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(listBarbersUC, availabilityUC, createAppointmentUC, d.Clock)
	chatHandler := handlers.NewChatHandler(agent)
	// tokens expire on wall time, not on the shop clock
	authHandler := handlers.NewAuthHandler(d.Users, cfg.JWTSecret, time.Now)
	barberHandler := handlers.NewBarberHandler(
		listBarbersUC,
		createBarberUC,
		updateBarberUC,
		deleteBarberUC,
		uploadAvatarUC,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		createAppointmentUC,
		changeStatusUC,
		rescheduleUC,
		deleteAppointmentUC,
	)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Clock().Location())

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.Metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.NewRateLimiter(cfg.RateLimitPerMin, d.Log).Middleware())
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/barbers/:id", publicHandler.GetBarber)
			publicAPI.GET("/barbers/:id/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)

			publicAPI.POST("/chat/sessions", chatHandler.StartSession)
			publicAPI.POST("/chat/sessions/:id/messages", chatHandler.SendMessage)

			if d.Hub != nil {
				publicAPI.GET("/ws", d.Hub.Handler(cfg.CORSAllowedOrigins))
			}
			if mem, ok := d.Objects.(*storage.MemoryStore); ok {
				publicAPI.GET("/avatars/*key", handlers.ServeAvatar(mem))
			}
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/barbers", barberHandler.List)
			admin.POST("/barbers", barberHandler.Create)
			admin.GET("/barbers/:id", barberHandler.Get)
			admin.PUT("/barbers/:id", barberHandler.Update)
			admin.DELETE("/barbers/:id", barberHandler.Delete)
			admin.PUT("/barbers/:id/avatar", barberHandler.UploadAvatar)

			admin.GET("/appointments", appointmentHandler.List)
			admin.POST("/appointments", appointmentHandler.Create)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.GET("/dashboard", dashboardHandler.Summary)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
