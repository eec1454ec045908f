package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"club-booking/backend/internal/config"
	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/domain/notifications"
	"club-booking/backend/internal/domain/reports"
	"club-booking/backend/internal/domain/usagelogs"
	"club-booking/backend/internal/firebase"
	apihttp "club-booking/backend/internal/http"
	"club-booking/backend/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg)

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		logger.Fatalf("firebase app init failed: %v", err)
	}

	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		logger.Fatalf("firestore init failed: %v", err)
	}
	defer fs.Close()

	// Repositories
	levelRepo := levels.NewRepo(fs.Client)
	memberRepo := members.NewRepo(fs.Client, levelRepo)
	facilityRepo := facilities.NewRepo(fs.Client)
	bookingRepo := bookings.NewRepo(fs.Client)
	usageLogRepo := usagelogs.NewRepo(fs.Client)

	// Services
	notificationsSvc := notifications.NewService(fs.Client)
	bookingSvc := bookings.NewService(bookingRepo, memberRepo, facilityRepo, levelRepo)
	bookingSvc.SetNotificationService(notificationsSvc)
	reportsSvc := reports.NewService(fs.Client)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:              cfg,
		Logger:           logger,
		LevelRepo:        levelRepo,
		MemberRepo:       memberRepo,
		FacilityRepo:     facilityRepo,
		BookingSvc:       bookingSvc,
		UsageLogRepo:     usageLogRepo,
		NotificationsSvc: notificationsSvc,
		ReportsSvc:       reportsSvc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		logger.WithFields(map[string]any{
			"port":    cfg.Port,
			"project": cfg.ProjectID,
		}).Info("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
