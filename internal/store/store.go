// Package store is the repository layer over PostgreSQL. All queries use
// positional parameters and translate sql.ErrNoRows into ErrNotFound so
// callers never depend on database/sql directly.
package store

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a required row does not exist.
var ErrNotFound = errors.New("store: not found")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}
