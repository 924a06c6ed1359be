package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"

	"github.com/inspectia/label-verify/internal/config"
	"github.com/inspectia/label-verify/internal/ocr"
	"github.com/inspectia/label-verify/internal/server"
	"github.com/inspectia/label-verify/internal/store"
	"github.com/inspectia/label-verify/internal/verify"
)

func main() {
	cfg := config.Load()

	log.WithFields(log.Fields{
		"http_addr":       cfg.HTTPAddr,
		"ocr_language":    cfg.OCRLanguage,
		"extract_timeout": cfg.ExtractTimeout.String(),
	}).Info("starting label verification service")

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := store.InitSchema(db); err != nil {
		log.WithError(err).Fatal("failed to initialize database schema")
	}
	st := store.NewMySQLStore(db)

	gateway := ocr.NewGateway(ocr.NewTesseractEngine(cfg.OCRLanguage), ocr.GatewayConfig{
		HTTPClient:     &http.Client{Timeout: cfg.DownloadTimeout},
		ExtractTimeout: cfg.ExtractTimeout,
		CacheSize:      cfg.ImageCacheSize,
	})
	defer func() {
		if err := gateway.Close(); err != nil {
			log.WithError(err).Error("failed to release OCR engine")
		}
	}()

	engine := verify.NewEngine(gateway, verify.LogObserver{})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(engine, st, st).Router(),
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
