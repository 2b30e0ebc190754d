package service

import (
	"context"
	"errors"
	"log"

	"focusflow-be/internal/ai"
	"focusflow-be/internal/entities"
	"focusflow-be/internal/models"
	"focusflow-be/internal/repository"
)

// DefaultSupportMode is used when a user creates a task before submitting a
// profile. Matches the generator's own default tone.
const DefaultSupportMode = "adhd"

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, userID, title, description string) (*entities.Task, error)
	GetUserTasks(userID string) ([]*entities.Task, error)
	UpdateTask(userID, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(userID, taskID string) error
}

type taskService struct {
	taskRepo  repository.TaskRepository
	stepRepo  repository.StepRepository
	profiles  ProfileService
	generator ai.StepGenerator
}

// NewTaskService creates a new task service. The profile service is consulted
// for the caller's support mode on every create (it caches the lookup).
func NewTaskService(
	taskRepo repository.TaskRepository,
	stepRepo repository.StepRepository,
	profiles ProfileService,
	generator ai.StepGenerator,
) TaskService {
	return &taskService{
		taskRepo:  taskRepo,
		stepRepo:  stepRepo,
		profiles:  profiles,
		generator: generator,
	}
}

// CreateTask persists a task and decomposes it into ordered steps. The task row
// commits first so steps have an id to attach to; the generator call happens in
// between, and its failure (or an empty result) swaps in the fallback sequence
// instead of failing the request. Only a store failure can surface an error.
func (s *taskService) CreateTask(ctx context.Context, userID, title, description string) (*entities.Task, error) {
	supportMode := s.resolveSupportMode(userID)

	task, err := s.taskRepo.Create(userID, title, description)
	if err != nil {
		return nil, err
	}

	texts, err := s.generator.GenerateSteps(ctx, title, supportMode)
	if err != nil {
		log.Printf("step generation failed for task %s: %v", task.ID, err)
		texts = nil
	}
	if len(texts) == 0 {
		texts = ai.FallbackSteps(title)
	}

	// The task is already committed; a failure here leaves it with fewer steps
	// than intended and is surfaced, not retried.
	steps, err := s.stepRepo.CreateBatch(task.ID, texts)
	if err != nil {
		return nil, err
	}

	task.Steps = steps
	return task, nil
}

// resolveSupportMode reads the caller's support mode, falling back to
// DefaultSupportMode when no profile exists yet.
func (s *taskService) resolveSupportMode(userID string) string {
	profile, err := s.profiles.Get(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("failed to load profile for user %s: %v", userID, err)
		}
		return DefaultSupportMode
	}
	return profile.SupportMode
}

// GetUserTasks returns all tasks owned by the user with steps eagerly loaded
func (s *taskService) GetUserTasks(userID string) ([]*entities.Task, error) {
	return s.taskRepo.GetByUserID(userID)
}

// UpdateTask applies a partial update to a task owned by the user
func (s *taskService) UpdateTask(userID, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	return s.taskRepo.Update(taskID, userID, req.Title, req.Description, req.IsCompleted)
}

// DeleteTask removes a task owned by the user; its steps cascade
func (s *taskService) DeleteTask(userID, taskID string) error {
	return s.taskRepo.Delete(taskID, userID)
}
