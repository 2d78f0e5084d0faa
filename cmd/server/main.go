// Package main is the entry point for the cliphub server.
//
// main stays minimal: read configuration from env vars, build the logger,
// hand both to the server package. All actual logic lives in internal/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/cliphub/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// Default to data/cliphub.db next to the working directory; DB_PATH
	// overrides for deployments.
	dbPath := "data/cliphub.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// The flat directory of {handle}.mp4 payloads. Created on startup if
	// absent (the blob store also creates it, so a custom CLIPS_DIR works
	// without any manual setup).
	clipsDir := "data/clips"
	if envClips := os.Getenv("CLIPS_DIR"); envClips != "" {
		clipsDir = envClips
	}

	srv, err := server.New(server.Config{
		Port:     port,
		DBPath:   dbPath,
		ClipsDir: clipsDir,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
