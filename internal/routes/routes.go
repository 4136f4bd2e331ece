package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/audit"
	"github.com/pawpoint/grooming-scheduler/internal/cache"
	"github.com/pawpoint/grooming-scheduler/internal/config"
	"github.com/pawpoint/grooming-scheduler/internal/handlers"
	infraRepo "github.com/pawpoint/grooming-scheduler/internal/infra/repository"
	"github.com/pawpoint/grooming-scheduler/internal/middleware"
	"github.com/pawpoint/grooming-scheduler/internal/storage"
	ucAppointment "github.com/pawpoint/grooming-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	store *cache.Cache,
	media *storage.MediaStore,
	log *zap.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sched := cfg.Scheduling()

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availableSlotsUC := ucAppointment.NewGetAvailableSlots(appointmentRepo, sched)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher, sched)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher, sched)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher, sched)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher, sched)
	addNoteUC := ucAppointment.NewAddNote(appointmentRepo, auditDispatcher)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	petHandler := handlers.NewPetHandler(db, media)
	serviceHandler := handlers.NewServiceHandler(db, media)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	holidayHandler := handlers.NewHolidayHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, store, sched)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		availableSlotsUC,
		createAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		addNoteUC,
		listAppointmentsUC,
		appointmentRepo,
		sched,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.ListActive)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/business-hours", businessHoursHandler.Get)
		api.GET("/holidays", holidayHandler.List)
		api.GET("/appointments/available-slots", appointmentHandler.AvailableSlots)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			secured.GET("/me/pets", petHandler.List)
			secured.POST("/me/pets", petHandler.Create)
			secured.PATCH("/me/pets/:id", petHandler.Update)
			secured.DELETE("/me/pets/:id", petHandler.Delete)
			secured.POST("/me/pets/:id/photo", petHandler.UploadPhoto)
			secured.GET("/me/pets/:id/health-records", petHandler.ListHealthRecords)
			secured.POST("/me/pets/:id/health-records", petHandler.CreateHealthRecord)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/notes", appointmentHandler.AddNote)

			// ------------------------------
			// STAFF
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireStaff())
			{
				staff.POST("/appointments/:id/confirm", appointmentHandler.Confirm)
				staff.POST("/appointments/:id/complete", appointmentHandler.Complete)

				staff.GET("/admin/services", serviceHandler.ListAll)
				staff.POST("/admin/services", serviceHandler.Create)
				staff.PATCH("/admin/services/:id", serviceHandler.Update)
				staff.DELETE("/admin/services/:id", serviceHandler.Delete)
				staff.PUT("/admin/services/:id/prices", serviceHandler.SetPrices)
				staff.POST("/admin/services/:id/image", serviceHandler.UploadImage)

				staff.PUT("/admin/business-hours", businessHoursHandler.Update)

				staff.POST("/admin/holidays", holidayHandler.Create)
				staff.PATCH("/admin/holidays/:id", holidayHandler.Update)
				staff.DELETE("/admin/holidays/:id", holidayHandler.Delete)

				staff.GET("/admin/dashboard/statistics", dashboardHandler.Statistics)
				staff.GET("/admin/dashboard/chart", dashboardHandler.Chart)
				staff.GET("/admin/dashboard/pending", dashboardHandler.Pending)

				staff.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
