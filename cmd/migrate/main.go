package main

import (
	"log"
	"os"

	"gincana/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Applies the SQL migrations under db/migrations to DATABASE_URL. The server
// also runs AutoMigrate at boot; this command is for deployments that manage
// the schema explicitly.
func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	m, err := migrate.New(migrationsSource, mustDatabaseURL())
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("apply migrations: %v", err)
	}
	log.Println("schema is up to date")
}

const migrationsSource = "file://db/migrations"

func mustDatabaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	return dsn
}
