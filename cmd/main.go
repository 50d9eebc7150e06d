package main

import (
	"context"
	"errors"
	"os"

	"github.com/nbmusic/nbx/internal/services"
	"github.com/nbmusic/nbx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	cookie := shared.LoadCookieFile(config.Bilibili.CookiePath)
	bili := services.NewBiliClient(config.Bilibili.BaseURL, cookie, logger)
	lyrics := services.NewNeteaseClient(config.Lyrics.BaseURL)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Bilibili: bili,
		Lyrics:   lyrics,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "nbx",
		Usage:    "Manage local playlists & import Bilibili favorites",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(errors.Unwrap(err), shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
