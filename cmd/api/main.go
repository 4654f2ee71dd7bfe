package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odontoweb/records-api/config"
	"github.com/odontoweb/records-api/internal/handler"
	patientHandler "github.com/odontoweb/records-api/internal/handler/patient"
	"github.com/odontoweb/records-api/internal/middleware"
	mongorepo "github.com/odontoweb/records-api/internal/repository/mongo"
	"github.com/odontoweb/records-api/internal/router"
	patientService "github.com/odontoweb/records-api/internal/service/patient"
	"github.com/odontoweb/records-api/pkg/logger"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	// The store handle is constructed here and closed at shutdown, every
	// component receives it explicitly.
	db, err := mongorepo.NewDB(context.Background(), cfg.Mongo)
	if err != nil {
		log.Fatal(err, "failed to connect to mongodb")
	}

	patientRepo := mongorepo.NewPatientRepository(db)
	patientSvc := patientService.NewService(patientRepo)

	healthH := handler.NewHealthHandler(db.Ping)
	patientH := patientHandler.NewHandler(patientSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	routerConfig := router.Config{
		CORSConfig:     corsConfig,
		RequestTimeout: cfg.Server.RequestTimeout,
		MetricsPrefix:  cfg.Monitoring.MetricsPrefix,
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimitRPS = cfg.RateLimit.RequestsPerSecond
		routerConfig.RateLimitBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(healthH, routerConfig, patientH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	if err := db.Close(ctx); err != nil {
		log.Error(err, "failed to close mongodb connection")
	}

	log.Info("server exited properly")
}
