package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(databaseURL string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Users table
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			username VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			has_image BOOLEAN NOT NULL DEFAULT FALSE,
			image_path TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Media catalog table
		`CREATE TABLE IF NOT EXISTS medias (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL UNIQUE,
			type VARCHAR(20) NOT NULL DEFAULT 'anime'
				CHECK (type IN ('anime', 'manga', 'videogame')),
			has_image BOOLEAN NOT NULL DEFAULT FALSE,
			image_path TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Knowledge ledger: one row per (user, media), cascades from both parents
		`CREATE TABLE IF NOT EXISTS known_medias (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			media_id INTEGER NOT NULL REFERENCES medias(id) ON DELETE CASCADE,
			known_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, media_id)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_medias_created_at ON medias(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_known_medias_media_id ON known_medias(media_id)`,
		`CREATE INDEX IF NOT EXISTS idx_known_medias_user_id ON known_medias(user_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
