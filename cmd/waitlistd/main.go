package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"getmybrief/internal/app"
	"getmybrief/internal/waitlist"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to waitlist config (TOML)")
	flag.Parse()

	log := app.NewConsoleLogger()

	cfg, err := waitlist.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := waitlist.NewPGStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not prepare schema")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.AllowedOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	waitlist.NewHandlers(store, log).Register(e)

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("waitlist service listening")
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
