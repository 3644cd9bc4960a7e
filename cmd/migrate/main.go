package main

import (
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var (
		source  = flag.String("source", "file://migrations", "Migration source")
		command = flag.String("command", "up", "Migration command (up, down)")
	)
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	m, err := migrate.New(*source, databaseURL)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch *command {
	case "up":
		logger.Info("Applying migrations...")
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	case "down":
		logger.Info("Reverting migrations...")
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			logger.Fatal("Failed to revert migrations", zap.Error(err))
		}
		logger.Info("Migrations reverted")
	default:
		logger.Fatal("Unknown command", zap.String("command", *command))
	}
}
