package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/goodnews-kr/platform-api/config"
)

// Seeds a bootstrap admin account for local development.
// Email and password can be overridden via SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := getenv("SEED_ADMIN_EMAIL", "admin@goodnews.kr")
	password := getenv("SEED_ADMIN_PASSWORD", "admin1234")
	name := getenv("SEED_ADMIN_NAME", "Administrator")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, name, role, status, login_type, user_type, password_hash)
		VALUES ($1, $2, 'ADMIN', 'active', 'email', 'NORMAL', $3)
		ON CONFLICT (email) DO UPDATE SET role = 'ADMIN', status = 'active', updated_at = now()
		RETURNING id
	`, email, name, string(hash)).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s\n", id, email)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
