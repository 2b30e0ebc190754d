package models

// UpsertProfileRequest represents the request body for creating or replacing a profile
type UpsertProfileRequest struct {
	SupportMode string `json:"support_mode" binding:"required"`
}
