// Package store is the Postgres persistence layer. Missing rows surface as
// apperrors.ErrNotFound; every other database failure is wrapped as
// apperrors.ErrPersistenceFailed so callers can classify without knowing SQL.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"zentrafuge/internal/apperrors"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrPersistenceFailed, op, err)
}
