// @title           Client Onboarding Tracker API
// @version         1.0
// @description     Multi-client onboarding tracker with steps, tasks, gating alerts and a go-live date ledger.
// @host            localhost:8080
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/app"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/config"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/logger"

	_ "github.com/jennyfitzgerald-jpg/onboarding-framework/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)
	defer log.Sync()

	log.Info("config loaded, connecting to DB and Redis")
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init", zap.Error(err))
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	if err := application.Close(ctx); err != nil {
		log.Error("app close", zap.Error(err))
	}
}
