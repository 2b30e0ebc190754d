package entities

import "time"

// Task represents a task entity in the database.
// Ownership (user_id) is the authorization boundary for tasks and their steps.
type Task struct {
	ID          string    `json:"id"` // UUID
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	Steps       []Step    `json:"steps"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
