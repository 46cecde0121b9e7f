package main

import (
	"log/slog"

	"github.com/DjordjeVuckovic/x-hunter/internal/config"
	"github.com/DjordjeVuckovic/x-hunter/internal/server"
)

type AppConfig struct {
	EnvPath string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		EnvPath: "cmd/xhunter_api/.env",
	}
}

type XHunterAPIConfig struct {
	Config       *config.Config
	ServerConfig *server.Config
}

func (as *AppConfig) Load() (*XHunterAPIConfig, error) {
	cfg, err := config.Load(as.EnvPath)
	if err != nil {
		slog.Error("Failed to load configuration from environment", "error", err)
		return nil, err
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		return nil, err
	}

	return &XHunterAPIConfig{
		Config:       cfg,
		ServerConfig: sCfg,
	}, nil
}
