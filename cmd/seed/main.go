package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/andikarya/go-user-service/config"
	"github.com/andikarya/go-user-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demoUser"
	email := "demo@example.com"
	password := "password123"

	salt, err := helpers.RandomToken()
	if err != nil {
		log.Fatalf("failed to generate salt: %v", err)
	}
	hash := helpers.HashCredential(salt, password)

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, email, fullname, bio, profile_image_url, password, salt)
		VALUES ($1, $2, '', '', '', $3, $4)
		ON CONFLICT (email) DO UPDATE SET password = EXCLUDED.password, salt = EXCLUDED.salt
		RETURNING id
	`, username, email, hash, salt).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s username=%s password=%s\n", id, email, username, password)
}
