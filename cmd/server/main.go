package main

import (
	"log"
	"net/http"
	"os"

	"gincana/internal/config"
	"gincana/internal/db"
	"gincana/internal/server"

	"gorm.io/gorm"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	conn := openDatabase(cfg)
	srv := server.New(conn, cfg)
	if err := srv.LoadFromDB(); err != nil {
		log.Fatalf("failed to load store from database: %v", err)
	}

	log.Printf("gincana server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(cfg config.Config) *gorm.DB {
	if os.Getenv("DATABASE_URL") == "" {
		log.Println("DATABASE_URL not set, running without persistence")
		return nil
	}
	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	return conn
}
