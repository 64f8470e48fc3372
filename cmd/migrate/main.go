package main

import (
	"log"
	"os"

	"shopsync/internal/platform/config"
	"shopsync/internal/platform/database"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	config.Load()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	m, err := database.NewMigrator(config.AppConfig.DBUrl)
	if err != nil {
		log.Fatalf("Could not create migrator: %v", err)
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatalf("Unknown direction %q (expected up or down)", direction)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration %s failed: %v", direction, err)
	}
	log.Printf("Migration %s complete.", direction)
}
