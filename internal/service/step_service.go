package service

import (
	"focusflow-be/internal/entities"
	"focusflow-be/internal/models"
	"focusflow-be/internal/repository"
)

// StepService defines the interface for step business logic. All operations go
// through the step repository's ownership-chain queries, so a step reachable
// only through someone else's task resolves to ErrNotFound.
type StepService interface {
	CreateStep(userID, taskID string, req *models.CreateStepRequest) (*entities.Step, error)
	GetTaskSteps(userID, taskID string) ([]entities.Step, error)
	UpdateStep(userID, taskID, stepID string, req *models.UpdateStepRequest) (*entities.Step, error)
	DeleteStep(userID, taskID, stepID string) error
}

type stepService struct {
	stepRepo repository.StepRepository
}

// NewStepService creates a new step service
func NewStepService(stepRepo repository.StepRepository) StepService {
	return &stepService{stepRepo: stepRepo}
}

// CreateStep adds a step to a task owned by the user, with the caller-supplied order
func (s *stepService) CreateStep(userID, taskID string, req *models.CreateStepRequest) (*entities.Step, error) {
	return s.stepRepo.Create(taskID, userID, req.Content, req.Order)
}

// GetTaskSteps lists a task's steps in display order
func (s *stepService) GetTaskSteps(userID, taskID string) ([]entities.Step, error) {
	return s.stepRepo.GetByTaskID(taskID, userID)
}

// UpdateStep applies a partial update to a step
func (s *stepService) UpdateStep(userID, taskID, stepID string, req *models.UpdateStepRequest) (*entities.Step, error) {
	return s.stepRepo.Update(stepID, taskID, userID, req.Content, req.IsCompleted)
}

// DeleteStep removes a step
func (s *stepService) DeleteStep(userID, taskID, stepID string) error {
	return s.stepRepo.Delete(stepID, taskID, userID)
}
