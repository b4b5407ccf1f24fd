package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// envFiles are loaded in order; variables already set in the process
// environment are never overridden.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles(logger *slog.Logger) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warn("Failed to load env file", logfields.File(f), logfields.Error(err))
			continue
		}
		logger.Debug("Loaded environment variables", logfields.File(f))
	}
}
