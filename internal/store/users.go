package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"zentrafuge/internal/apperrors"
	"zentrafuge/internal/models"
)

const userColumns = "user_id, email, name, buddy_name, buddy_vibe, growth_level, growth_points, created_at"

// CreateUser inserts a new user document. A duplicate userId reports
// ErrValidation, matching the registration contract.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	var created models.User
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (user_id, email, name, buddy_name, buddy_vibe, growth_level, growth_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+userColumns,
		u.UserID, u.Email, u.Name, u.BuddyName, u.BuddyVibe, u.GrowthLevel, u.GrowthPoints).StructScan(&created)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("%w: user already exists", apperrors.ErrValidation)
	}
	if err != nil {
		return models.User{}, storeErr("create user", err)
	}
	return created, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.User{}, storeErr("get user", err)
	}
	return u, nil
}

// UpdateProfile patches the provided subset of mutable profile fields and
// returns the updated user.
func (s *Store) UpdateProfile(ctx context.Context, userID string, name, buddyName, buddyVibe *string) (models.User, error) {
	setClauses := []string{}
	args := []interface{}{}
	if name != nil {
		args = append(args, *name)
		setClauses = append(setClauses, "name=$"+strconv.Itoa(len(args)))
	}
	if buddyName != nil {
		args = append(args, *buddyName)
		setClauses = append(setClauses, "buddy_name=$"+strconv.Itoa(len(args)))
	}
	if buddyVibe != nil {
		args = append(args, *buddyVibe)
		setClauses = append(setClauses, "buddy_vibe=$"+strconv.Itoa(len(args)))
	}
	if len(setClauses) == 0 {
		return s.GetUser(ctx, userID)
	}

	args = append(args, userID)
	query := "UPDATE users SET " + strings.Join(setClauses, ", ") +
		" WHERE user_id=$" + strconv.Itoa(len(args)) + " RETURNING " + userColumns

	var u models.User
	err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&u)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperrors.ErrNotFound
	}
	if err != nil {
		return models.User{}, storeErr("update profile", err)
	}
	return u, nil
}

// AddPoints accumulates growth points atomically and returns the new total.
func (s *Store) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	var total int
	err := s.db.GetContext(ctx, &total, `
		UPDATE users SET growth_points = growth_points + $1
		WHERE user_id=$2
		RETURNING growth_points`, delta, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.ErrNotFound
	}
	if err != nil {
		return 0, storeErr("add points", err)
	}
	return total, nil
}

// SetLevel records a level transition. Levels never decrease, so the update
// is guarded against stale writers racing each other.
func (s *Store) SetLevel(ctx context.Context, userID string, level int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET growth_level = $1
		WHERE user_id=$2 AND growth_level < $1`, level, userID)
	if err != nil {
		return storeErr("set level", err)
	}
	return nil
}
