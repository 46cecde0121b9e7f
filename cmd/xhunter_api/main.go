// Package main serves search and Space creation over HTTP for one exported session.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/DjordjeVuckovic/x-hunter/internal/router"
	"github.com/DjordjeVuckovic/x-hunter/internal/search"
	"github.com/DjordjeVuckovic/x-hunter/internal/server"
	"github.com/DjordjeVuckovic/x-hunter/internal/space"
	pkgserver "github.com/DjordjeVuckovic/x-hunter/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.Config.LogLevel)

	sess, err := cfg.Config.NewSession()
	if err != nil {
		slog.Error("Failed to load session cookies", "path", cfg.Config.CookiesPath, "error", err)
		os.Exit(1)
	}
	if !sess.IsLoggedIn() {
		slog.Warn("Session is not logged in, search requests will be rejected", "path", cfg.Config.CookiesPath)
	}

	s := server.New(cfg.ServerConfig, pkgserver.NewSessionHealthChecker(sess)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "X Hunter API is running")
	})

	doer := cfg.Config.NewTransport()

	router.NewSearchRouter(s.Echo, search.NewClient(sess, doer)).Bind()
	router.NewSpaceRouter(s.Echo, space.NewHandshake(doer), sess).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
