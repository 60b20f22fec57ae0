package http

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/agendamento-backend/docs"
	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/i18n"
)

// RouterDeps agrega o que o router precisa
type RouterDeps struct {
	BaseURL        string
	AllowedOrigins string

	I18n        *i18n.Service
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter

	Users        *UserHandler
	Specialties  *SpecialtyHandler
	Doctors      *DoctorHandler
	Appointments *AppointmentHandler
	Login        *AuthHandler
	Realtime     *RealtimeHandler
}

// NewRouter monta o gin.Engine com middlewares e rotas
func NewRouter(deps RouterDeps) *gin.Engine {
	dto.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.BaseURL(deps.BaseURL))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws/"})))
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.NewI18nMiddleware(deps.I18n).DetectLanguage())

	router.NoRoute(func(c *gin.Context) {
		dto.Abort(c, dto.NotFoundErrorResponseI18n(c, "error.not_found.title"))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := deps.Auth.RequireAuth()
	manageUsers := middleware.RequirePermission(entities.PermissionUsersManage)
	manageCatalog := middleware.RequirePermission(entities.PermissionCatalogManage)
	exportAppointments := middleware.RequirePermission(entities.PermissionAppointmentsExport)

	// Auth
	router.GET("/login", deps.Login.LoginPage)
	auth := router.Group("/auth")
	{
		auth.GET("/failure", deps.Login.Failure)
		auth.GET("/token", requireAuth, deps.Login.Token)

		limited := auth.Group("", deps.RateLimiter.Limit())
		limited.GET("/google", deps.Login.GoogleLogin)
		limited.GET("/google/callback", deps.Login.GoogleCallback)
	}

	// Users
	users := router.Group("/users", requireAuth)
	{
		users.GET("/me", deps.Users.Me)
		users.GET("", manageUsers, deps.Users.ListUsers)
		users.POST("", manageUsers, deps.Users.CreateUser)
		users.GET("/:id", manageUsers, deps.Users.GetUser)
		users.PUT("/:id", manageUsers, deps.Users.UpdateUser)
		users.DELETE("/:id", manageUsers, deps.Users.DeleteUser)
		users.GET("/:id/appointments", deps.Users.UserAppointments)
		users.GET("/:id/doctors", deps.Users.UserDoctors)
		users.GET("/:id/specialties/:specialtyId/appointments", deps.Users.UserSpecialtyAppointments)
	}

	// Specialties
	specialties := router.Group("/specialties")
	{
		specialties.GET("", deps.Specialties.ListSpecialties)
		specialties.GET("/:id", requireAuth, deps.Specialties.GetSpecialty)
		specialties.POST("", requireAuth, manageCatalog, deps.Specialties.CreateSpecialty)
		specialties.PUT("/:id", requireAuth, manageCatalog, deps.Specialties.UpdateSpecialty)
		specialties.DELETE("/:id", requireAuth, manageCatalog, deps.Specialties.DeleteSpecialty)
	}

	// Doctors
	doctors := router.Group("/doctors")
	{
		doctors.GET("", deps.Doctors.ListDoctors)

		admin := doctors.Group("", requireAuth, manageCatalog)
		admin.POST("", deps.Doctors.CreateDoctor)
		admin.GET("/:id", deps.Doctors.GetDoctor)
		admin.PUT("/:id", deps.Doctors.UpdateDoctor)
		admin.DELETE("/:id", deps.Doctors.DeleteDoctor)
		admin.GET("/:id/appointments", deps.Doctors.DoctorAppointments)
	}

	// Appointments
	appointments := router.Group("/appointments", requireAuth)
	{
		appointments.GET("", deps.Appointments.ListAppointments)
		appointments.GET("/export", exportAppointments, deps.Appointments.ExportAppointments)
		appointments.POST("", deps.Appointments.CreateAppointment)
		appointments.GET("/:id", deps.Appointments.GetAppointment)
		appointments.PUT("/:id", deps.Appointments.UpdateAppointment)
		appointments.DELETE("/:id", deps.Appointments.DeleteAppointment)
	}

	// Realtime
	router.GET("/ws/appointments", requireAuth, deps.Realtime.Appointments)

	return router
}
