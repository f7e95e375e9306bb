package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/saeid-a/FitClubBack/internal/database"
	"github.com/saeid-a/FitClubBack/internal/legacy"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		log.Fatal("DB_URL environment variable is required")
	}
	sqlitePath := os.Getenv("LEGACY_SQLITE_PATH")
	if len(os.Args) > 1 {
		sqlitePath = os.Args[1]
	}
	if sqlitePath == "" {
		log.Fatal("LEGACY_SQLITE_PATH or a path argument is required")
	}

	runLog := log.WithField("run_id", uuid.NewString())

	ctx := context.Background()
	pool, err := database.Connect(ctx, dbUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	src, err := legacy.OpenSQLite(sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open legacy database: %v", err)
	}
	defer src.Close()

	runLog.WithField("source", sqlitePath).Info("Starting legacy import")

	stats, err := legacy.NewImporter(pool, log).Run(ctx, src)
	if err != nil {
		runLog.Fatalf("Import failed: %v", err)
	}

	runLog.WithFields(logrus.Fields{
		"users_inserted":    stats.UsersInserted,
		"users_skipped":     stats.UsersSkipped,
		"profiles_upserted": stats.ProfilesUpserted,
		"profiles_orphaned": stats.ProfilesOrphaned,
	}).Info("Legacy import complete")
}
