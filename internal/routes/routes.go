package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/cache"
	"github.com/BruksfildServices01/ora-fixa/internal/config"
	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	"github.com/BruksfildServices01/ora-fixa/internal/handlers"
	infraRepo "github.com/BruksfildServices01/ora-fixa/internal/infra/repository"
	"github.com/BruksfildServices01/ora-fixa/internal/middleware"
	"github.com/BruksfildServices01/ora-fixa/internal/observability/metrics"
	ucAppointment "github.com/BruksfildServices01/ora-fixa/internal/usecase/appointment"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/auditlog"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/catalogue"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/dashboard"
	"github.com/BruksfildServices01/ora-fixa/internal/usecase/profile"
)

// Deps are the process-wide singletons main builds.
type Deps struct {
	Config   *config.Config
	Store    datastore.Store
	DB       handlers.Pinger
	Cache    cache.SlotCache
	Audit    *audit.Dispatcher
	Log      *zap.Logger
	Registry *prometheus.Registry
	// Now is the clock used by booking; nil means time.Now.
	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	loc := d.Config.Location()
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log, metrics.NewHTTPMetrics(d.Registry)))
	r.Use(middleware.CORS(d.Config.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentRepository(d.Store)
	catalogueRepo := infraRepo.NewCatalogueRepository(d.Store)
	profileRepo := infraRepo.NewProfileRepository(d.Store)
	auditRepo := infraRepo.NewAuditLogRepository(d.Store)
	dashboardRepo := infraRepo.NewDashboardRepository(d.Store)

	// ======================================================
	// USE CASES
	// ======================================================
	apDeps := ucAppointment.Deps{
		Repo:     appointmentRepo,
		Cache:    d.Cache,
		Audit:    d.Audit,
		Metrics:  metrics.NewBookingMetrics(d.Registry),
		Log:      log,
		Location: loc,
		Step:     d.Config.SlotStep(),
		Now:      d.Now,
	}

	getAvailabilityUC := ucAppointment.NewGetAvailability(apDeps)
	bookUC := ucAppointment.NewBookAppointment(apDeps)
	walkInUC := ucAppointment.NewAddWalkIn(apDeps)
	transitionUC := ucAppointment.NewTransitionAppointment(apDeps)

	catalogueSvc := catalogue.NewService(catalogueRepo, d.Cache, d.Audit, log)
	profileSvc := profile.NewService(profileRepo, d.Audit)
	dashboardUC := dashboard.NewLoad(dashboardRepo, loc)
	auditLogsUC := auditlog.NewList(auditRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(catalogueSvc, getAvailabilityUC, loc)
	appointmentHandler := handlers.NewAppointmentHandler(bookUC, walkInUC, transitionUC, loc)
	meHandler := handlers.NewMeHandler(profileSvc, loc)
	clientHandler := handlers.NewClientHandler(profileSvc)
	servicesHandler := handlers.NewServicesHandler(catalogueSvc)
	workingHoursHandler := handlers.NewWorkingHoursHandler(catalogueSvc, loc)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC, loc)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogsUC)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	// ======================================================
	// PUBLIC
	// ======================================================
	public := api.Group("/public")
	{
		public.GET("/services", publicHandler.ListServices)
		public.GET("/availability", publicHandler.Availability)
	}

	// ======================================================
	// AUTHENTICATED CLIENT
	// ======================================================
	auth := middleware.AuthMiddleware(d.Config.JWTSecret, profileRepo, log)

	me := api.Group("/me")
	me.Use(auth)
	{
		me.GET("", meHandler.Me)
		me.PATCH("/profile", meHandler.UpdateProfile)
		me.PATCH("/account", meHandler.UpdateAccount)
		me.PUT("/preferences", meHandler.UpdatePreferences)
		me.GET("/stats", meHandler.Stats)

		me.GET("/appointments", meHandler.Appointments)
		me.POST("/appointments", appointmentHandler.Book)
		me.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.GET("/dashboard", dashboardHandler.Get)

		admin.POST("/appointments/walk-in", appointmentHandler.WalkIn)
		admin.POST("/appointments/:id/:action", appointmentHandler.Transition)

		admin.GET("/clients", clientHandler.List)
		admin.PATCH("/clients/:id", clientHandler.Update)

		admin.GET("/services", servicesHandler.List)
		admin.POST("/services", servicesHandler.Create)
		admin.PATCH("/services/:id", servicesHandler.Update)

		admin.GET("/work-schedules", workingHoursHandler.Get)
		admin.PUT("/work-schedules", workingHoursHandler.Update)
		admin.GET("/overrides", workingHoursHandler.ListOverrides)
		admin.PUT("/overrides", workingHoursHandler.SaveOverride)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
