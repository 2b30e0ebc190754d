package repository

import (
	"database/sql"
	"fmt"

	"focusflow-be/internal/entities"
)

// ProfileRepository defines the interface for profile database operations
type ProfileRepository interface {
	Upsert(userID, supportMode string) (*entities.Profile, error)
	FindByUserID(userID string) (*entities.Profile, error)
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert creates the user's profile or overwrites its support mode. Either way
// onboarding_completed is forced to true, so the call is idempotent.
func (r *profileRepository) Upsert(userID, supportMode string) (*entities.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, support_mode, onboarding_completed)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (user_id) DO UPDATE
		SET support_mode = EXCLUDED.support_mode,
		    onboarding_completed = TRUE,
		    updated_at = NOW()
		RETURNING id, user_id, support_mode, onboarding_completed, created_at, updated_at
	`

	var profile entities.Profile
	err := r.db.QueryRow(query, userID, supportMode).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.SupportMode,
		&profile.OnboardingCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return &profile, nil
}

// FindByUserID finds the profile owned by a user. There is no auto-provisioning
// on read; a user who never submitted a profile gets ErrNotFound.
func (r *profileRepository) FindByUserID(userID string) (*entities.Profile, error) {
	query := `
		SELECT id, user_id, support_mode, onboarding_completed, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile entities.Profile
	err := r.db.QueryRow(query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.SupportMode,
		&profile.OnboardingCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &profile, nil
}
