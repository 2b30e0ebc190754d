package entities

import "time"

// Step represents a single decomposed step of a task.
// Order starts at 1 per task; duplicates and gaps are tolerated by readers.
type Step struct {
	ID          string    `json:"id"` // UUID
	TaskID      string    `json:"task_id"`
	Content     string    `json:"content"`
	Order       int       `json:"order"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}
