package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedAdmin(db)

	seedFiles := []string{
		"seed/customers.sql",
	}
	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Printf("skipping %s: %v", file, err)
			continue
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Seeded: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}

// seedAdmin creates the initial admin user if it does not exist yet.
func seedAdmin(db *sql.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@bankleads.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email=$1`, email).Scan(&count); err != nil {
		log.Fatalf("failed to check for existing admin: %v", err)
	}
	if count > 0 {
		log.Println("admin user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	now := time.Now()
	_, err = db.Exec(
		`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
         VALUES ($1, $2, $3, $4, 'admin', $5, $5)`,
		uuid.NewString(), "Administrator", email, string(hash), now,
	)
	if err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	log.Println("admin user created:", email)
}
