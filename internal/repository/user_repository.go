package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wanderstay-notify/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (domain.PreferenceMap, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs domain.PreferenceMap) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, full_name, email, avatar_url, notification_preferences, created_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (domain.PreferenceMap, error) {
	var prefs domain.PreferenceMap
	query := `SELECT notification_preferences FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &prefs, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *userRepository) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs domain.PreferenceMap) error {
	query := `UPDATE users SET notification_preferences = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, prefs)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
