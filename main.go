package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Jose888-pixe/Web-hotel-sub000/config"
	"github.com/Jose888-pixe/Web-hotel-sub000/controllers"
	"github.com/Jose888-pixe/Web-hotel-sub000/routes"
	"github.com/Jose888-pixe/Web-hotel-sub000/services"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
	"github.com/Jose888-pixe/Web-hotel-sub000/workers"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logrus.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	logrus.Info("database connection established, migrations applied")

	rdb := config.ConnectRedis()
	cache := services.NewPoolCache(rdb, utils.EnvDuration("POOL_CACHE_TTL", 5*time.Minute))

	clock := utils.RealClock{}

	// Services
	roomService := services.NewRoomService(db, cache, clock)
	availabilityService := services.NewAvailabilityService(db, roomService, cache, clock)
	reservationService := services.NewReservationService(db, cache, clock)
	statusSyncService := services.NewStatusSyncService(db, clock)

	// Controllers
	roomController := controllers.NewRoomController(roomService, availabilityService)
	reservationController := controllers.NewReservationController(reservationService)

	router := routes.SetupRouter(roomController, reservationController)

	// Background sweeps: status sync every few minutes, cleanup daily.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	syncWorker := workers.NewStatusSyncWorker(statusSyncService, utils.EnvDuration("STATUS_SYNC_INTERVAL", 5*time.Minute))
	cleanupWorker := workers.NewCleanupWorker(reservationService, utils.EnvDuration("CLEANUP_INTERVAL", 24*time.Hour))
	go syncWorker.Start(workerCtx)
	go cleanupWorker.Start(workerCtx)

	// One synchronizer pass at boot so statuses are current before traffic.
	if changed, err := statusSyncService.SyncAll(); err != nil {
		logrus.Errorf("initial status sync failed: %v", err)
	} else if changed > 0 {
		logrus.Infof("initial status sync updated %d room(s)", changed)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received, shutting down server...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	logrus.Info("server stopped gracefully")
}
