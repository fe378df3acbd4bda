package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/sincet/noticeboard-api/api/swagger"
	"github.com/sincet/noticeboard-api/internal/handler"
	"github.com/sincet/noticeboard-api/internal/realtime"
	"github.com/sincet/noticeboard-api/internal/repository"
	"github.com/sincet/noticeboard-api/internal/service"
	"github.com/sincet/noticeboard-api/pkg/config"
	"github.com/sincet/noticeboard-api/pkg/database"
	"github.com/sincet/noticeboard-api/pkg/logger"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

// @title College Notice Board API
// @version 1.0.0
// @description Multi-department digital notice board with TV displays and an attendance register
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	uploads, err := storage.NewUploadStore(cfg.Uploads.Dir, cfg.Uploads.AllowedExtensions)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload storage", "error", err)
	}
	exports, err := storage.NewExportStore(cfg.Exports.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}

	hub := realtime.NewHub(logr)
	var publisher realtime.Publisher = hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Realtime.RedisEnabled {
		bridge, err := realtime.NewRedisBridge(cfg.Redis, cfg.Realtime.Channel, hub, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer bridge.Close() //nolint:errcheck
		publisher = bridge
		go bridge.Run(ctx)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	eventRepo := repository.NewEventRepository(db)
	resultRepo := repository.NewResultRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	metricsSvc := service.NewMetricsService(hub.ClientCount)
	publisher = service.InstrumentedPublisher{Next: publisher, Metrics: metricsSvc}
	authSvc := service.NewAuthService(userRepo, validate, logr, cfg.Auth, cfg.College)
	noticeSvc := service.NewNoticeService(noticeRepo, uploads, publisher, validate, logr)
	eventSvc := service.NewEventService(eventRepo, uploads, publisher, validate, logr)
	resultSvc := service.NewResultService(resultRepo, uploads, publisher, validate, logr, cfg.College)
	mediaSvc := service.NewMediaService(mediaRepo, uploads, publisher, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr, cfg.College)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, exports, validate, logr, cfg.College)
	settingsSvc := service.NewSettingsService(settingsRepo, publisher, validate, logr)
	displaySvc := service.NewDisplayService(noticeRepo, eventRepo, mediaRepo, settingsRepo, uploads, logr)
	dashboardSvc := service.NewDashboardService(noticeRepo, eventRepo, attendanceRepo, logr, cfg.College)

	departments := make([]string, 0, len(cfg.College.Departments))
	for _, dept := range cfg.College.Departments {
		departments = append(departments, dept.Code)
	}
	if err := settingsSvc.EnsureDefaults(ctx, departments); err != nil {
		logr.Sugar().Fatalw("failed to seed display settings", "error", err)
	}

	r := handler.NewRouter(handler.RouterDeps{
		Config:     cfg,
		Logger:     logr,
		Metrics:    metricsSvc,
		Hub:        hub,
		Auth:       handler.NewAuthHandler(authSvc, logr),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Notices:    handler.NewNoticeHandler(noticeSvc),
		Events:     handler.NewEventHandler(eventSvc),
		Results:    handler.NewResultHandler(resultSvc),
		Media:      handler.NewMediaHandler(mediaSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc, metricsSvc, logr),
		Settings:   handler.NewSettingsHandler(settingsSvc),
		Display:    handler.NewDisplayHandler(displaySvc, noticeSvc, eventSvc, resultSvc, mediaSvc, cfg.College),
		QR:         handler.NewQRHandler(""),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
