package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/middleware"
	"github.com/sincet/noticeboard-api/internal/realtime"
	"github.com/sincet/noticeboard-api/internal/service"
	"github.com/sincet/noticeboard-api/pkg/config"
	"github.com/sincet/noticeboard-api/pkg/logger"
	corsmiddleware "github.com/sincet/noticeboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sincet/noticeboard-api/pkg/middleware/requestid"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *service.MetricsService
	Hub     *realtime.Hub

	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Notices    *NoticeHandler
	Events     *EventHandler
	Results    *ResultHandler
	Media      *MediaHandler
	Students   *StudentHandler
	Attendance *AttendanceHandler
	Settings   *SettingsHandler
	Display    *DisplayHandler
	QR         *QRHandler
}

// NewRouter assembles the gin engine: middleware chain, session store,
// public display routes and the staff admin surface.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.BodyLimit(deps.Config.Uploads.MaxFileSizeBytes))
	r.Use(middleware.Metrics(deps.Metrics))
	r.MaxMultipartMemory = deps.Config.Uploads.MaxFileSizeBytes

	store := cookie.NewStore([]byte(deps.Config.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(deps.Config.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   deps.Config.Env == config.EnvProduction,
	})
	r.Use(sessions.Sessions(deps.Config.Session.CookieName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/login", deps.Auth.Login)
	r.POST("/logout", deps.Auth.Logout)
	r.GET("/session", deps.Auth.Session)

	r.GET("/ws", deps.Hub.ServeWS)
	r.Static("/uploads", deps.Config.Uploads.Dir)

	// Public surface: boards, TV displays and QR landings need no session.
	api := r.Group("/api")
	{
		api.GET("/notices/:department", deps.Display.Notices)
		api.GET("/events/:department", deps.Display.Events)
		api.GET("/results/:department", deps.Display.Results)
		api.GET("/media/:department", deps.Display.Media)
		api.GET("/settings/:department", deps.Display.Settings)
		api.GET("/display/:department", deps.Display.Board)
		api.GET("/notice/:id", deps.Display.Notice)
		api.GET("/event/:id", deps.Display.Event)
		api.GET("/result/:id", deps.Display.Result)
	}
	r.GET("/viewer", deps.Display.Viewer)
	r.GET("/notice/:id", deps.Display.Notice)
	r.GET("/event/:id", deps.Display.Event)
	r.GET("/result/:id", deps.Display.Result)
	r.GET("/qr/:kind/:id", deps.QR.Generate)

	admin := api.Group("/admin", middleware.SessionRequired(), middleware.AdminRequired())
	{
		admin.GET("/dashboard", deps.Dashboard.Overview)

		admin.GET("/notices", deps.Notices.List)
		admin.POST("/notices", deps.Notices.Create)
		admin.GET("/notices/:id", deps.Notices.Get)
		admin.DELETE("/notices/:id", deps.Notices.Delete)

		admin.GET("/events", deps.Events.List)
		admin.POST("/events", deps.Events.Create)
		admin.GET("/events/:id", deps.Events.Get)
		admin.DELETE("/events/:id", deps.Events.Delete)

		admin.GET("/results", deps.Results.List)
		admin.POST("/results", deps.Results.Create)
		admin.GET("/results/:id", deps.Results.Get)
		admin.DELETE("/results/:id", deps.Results.Delete)

		admin.GET("/media", deps.Media.List)
		admin.POST("/media", deps.Media.Create)
		admin.DELETE("/media/:id", deps.Media.Delete)

		admin.GET("/students", deps.Students.List)
		admin.POST("/students", deps.Students.Create)
		admin.POST("/students/import", deps.Students.Import)
		admin.DELETE("/students/:id", deps.Students.Delete)

		admin.POST("/attendance", deps.Attendance.Mark)
		admin.GET("/attendance/sheet", deps.Attendance.Sheet)
		admin.GET("/attendance/register", deps.Attendance.Register)
		admin.GET("/attendance/export", deps.Attendance.Export)

		admin.GET("/settings", deps.Settings.Get)
		admin.PUT("/settings", deps.Settings.Update)
	}

	return r
}
