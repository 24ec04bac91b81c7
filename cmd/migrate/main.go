package main

// Run database migrations:
//   go run ./cmd/migrate          # up
//   go run ./cmd/migrate down     # roll back one version
//   go run ./cmd/migrate version  # print the current version

import (
	"context"
	"fmt"
	"os"

	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/storage/db"
	"ats-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch cmd {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "version":
		var v int64
		v, err = db.MigrationVersion(ctx, sqlDB)
		if err == nil {
			fmt.Println(v)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want up, down or version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": cmd, "error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"command": cmd})
}
