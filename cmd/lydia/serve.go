package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/whitemech/lydia-sub000/httpapi"
	"github.com/whitemech/lydia-sub000/internal/cache"
	"github.com/whitemech/lydia-sub000/internal/config"
	"github.com/whitemech/lydia-sub000/logger"
)

var flagConfig = pflag.String("config", "lydia.toml", "Path to the server's TOML config file")

// runServe loads the config file and runs the HTTP API in the foreground
// until interrupted, modeled on cmd/tqserver/main.go's init-then-
// ServeForever shape but with this domain's config.Load in place of the
// teacher's CLI-flag/env-var assembly.
func runServe() error {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return err
	}

	log := logger.NewStdLogger(cfg.ParsedLogLevel())

	c, err := cache.Open(cfg.CacheDBPath)
	if err != nil {
		return err
	}
	defer c.Close()

	api := httpapi.New(c, []byte(cfg.JWTSecret), log)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-sig:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
