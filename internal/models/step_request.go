package models

// CreateStepRequest represents the request body for adding a step to a task.
// The caller supplies the order; no server-side renumbering happens.
type CreateStepRequest struct {
	Content string `json:"content" binding:"required"`
	Order   int    `json:"order" binding:"required,min=1"`
}

// UpdateStepRequest represents the request body for partially updating a step.
// Nil fields are left untouched.
type UpdateStepRequest struct {
	Content     *string `json:"content,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}
