package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/cvbuilder/api/config"
)

// Seeds a demo user (as if synchronized from a provider webhook) plus one
// sample resume, for local development against real Postgres.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	providerID := "user_" + uuid.NewString()
	email := "demo@cvbuilder.local"

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (provider, provider_id, email, first_name, last_name, avatar_url)
		VALUES ('clerk', $1, $2, 'Demo', 'User', '')
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, providerID, email).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s provider_id=%s\n", userID, email, providerID)

	var resumeID string
	err = db.QueryRow(`
		INSERT INTO resumes (user_id, title, sub_title, overview,
			information, educations, skills, work_experiences, projects)
		VALUES ($1, 'Software Engineer', 'Backend', 'Demo resume seeded for local development.',
			'[{"label":"Location","value":"Jakarta"}]',
			'[{"school":"Demo University","degree":"BSc","major":"Computer Science","start_date":"2016-09-01T00:00:00Z","end_date":"2020-06-30T00:00:00Z"}]',
			'[{"label":"Go","value":"advanced"},{"label":"PostgreSQL","value":"advanced"}]',
			'[{"company":"Demo Corp","position":"Backend Engineer","description":"Built APIs","start_date":"2020-08-01T00:00:00Z"}]',
			'[{"title":"cv-builder","sub_title":"This service","details":"Resume builder backend"}]')
		RETURNING id
	`, userID).Scan(&resumeID)
	if err != nil {
		log.Fatalf("failed to seed resume: %v", err)
	}
	fmt.Printf("seeded resume: id=%s user_id=%s\n", resumeID, userID)
}
