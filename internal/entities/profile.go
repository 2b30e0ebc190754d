package entities

import "time"

// Profile represents a user's neurodivergence-support profile.
// Exactly one row per user (unique constraint on user_id).
type Profile struct {
	ID                  string    `json:"id"` // UUID
	UserID              string    `json:"user_id"`
	SupportMode         string    `json:"support_mode"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
