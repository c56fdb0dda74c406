package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/infra"
	"github.com/umalmyha/crm/internal/service"
)

//go:generate swag init --output docs

// @title       CRM API
// @version     1.0
// @description Customer store with create, read, partial update and delete operations.
// @BasePath    /
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Fatalf("failed to load .env file - %v", err)
	}

	cfg, err := config.Build()
	if err != nil {
		logrus.Fatal(err)
	}

	log, err := infra.Logger(cfg.LogCfg)
	if err != nil {
		logrus.Fatal(err)
	}

	customerRps, closeStorage, err := infra.Storage(context.Background(), cfg.StorageCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	customerSvc := service.NewCustomerService(customerRps)
	if err := customerSvc.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	e, err := infra.Router(customerSvc, log)
	if err != nil {
		log.Fatal(err)
	}

	log.WithField("storage", cfg.StorageCfg.Kind).Infof("starting server on port %d", cfg.HTTPCfg.Port)
	start(e, cfg.HTTPCfg, log)
}

func start(e *echo.Echo, cfg config.HTTPCfg, log logrus.FieldLogger) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		errorCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutdown signal has been sent, stopping the server...")
		if err := e.Shutdown(ctx); err != nil {
			log.Errorf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
