package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"focusflow-be/internal/entities"
	"focusflow-be/internal/models"
	"focusflow-be/internal/repository"
)

// fakeTaskRepo keeps tasks in memory and honors the same ownership scoping as
// the real repository: a task resolved with the wrong user is ErrNotFound.
type fakeTaskRepo struct {
	tasks     map[string]*entities.Task
	nextID    int
	createErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*entities.Task)}
}

func (f *fakeTaskRepo) Create(userID, title, description string) (*entities.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	task := &entities.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		UserID:      userID,
		Title:       title,
		Description: description,
		Steps:       []entities.Step{},
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskRepo) FindByID(id, userID string) (*entities.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) GetByUserID(userID string) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(id, userID string, title, description *string, isCompleted *bool) (*entities.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if title != nil {
		task.Title = *title
	}
	if description != nil {
		task.Description = *description
	}
	if isCompleted != nil {
		task.IsCompleted = *isCompleted
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) Delete(id, userID string) error {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

// fakeStepRepo records batch inserts and assigns 1-based orders like the real one.
type fakeStepRepo struct {
	batches  map[string][]string
	batchErr error
	nextID   int
}

func newFakeStepRepo() *fakeStepRepo {
	return &fakeStepRepo{batches: make(map[string][]string)}
}

func (f *fakeStepRepo) Create(taskID, userID, content string, order int) (*entities.Step, error) {
	f.nextID++
	return &entities.Step{
		ID:      fmt.Sprintf("step-%d", f.nextID),
		TaskID:  taskID,
		Content: content,
		Order:   order,
	}, nil
}

func (f *fakeStepRepo) CreateBatch(taskID string, contents []string) ([]entities.Step, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	f.batches[taskID] = contents
	steps := make([]entities.Step, 0, len(contents))
	for i, content := range contents {
		f.nextID++
		steps = append(steps, entities.Step{
			ID:      fmt.Sprintf("step-%d", f.nextID),
			TaskID:  taskID,
			Content: content,
			Order:   i + 1,
		})
	}
	return steps, nil
}

func (f *fakeStepRepo) GetByTaskID(taskID, userID string) ([]entities.Step, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeStepRepo) Update(id, taskID, userID string, content *string, isCompleted *bool) (*entities.Step, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeStepRepo) Delete(id, taskID, userID string) error {
	return repository.ErrNotFound
}

// fakeProfiles serves a single profile, or ErrNotFound when absent.
type fakeProfiles struct {
	profile *entities.Profile
}

func (f *fakeProfiles) Upsert(userID, supportMode string) (*entities.Profile, error) {
	f.profile = &entities.Profile{ID: "profile-1", UserID: userID, SupportMode: supportMode, OnboardingCompleted: true}
	return f.profile, nil
}

func (f *fakeProfiles) Get(userID string) (*entities.Profile, error) {
	if f.profile == nil || f.profile.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return f.profile, nil
}

// fakeGenerator returns canned steps or an error, and records what it was asked.
type fakeGenerator struct {
	steps          []string
	err            error
	gotTitle       string
	gotSupportMode string
	calls          int
}

func (f *fakeGenerator) GenerateSteps(ctx context.Context, title, supportMode string) ([]string, error) {
	f.calls++
	f.gotTitle = title
	f.gotSupportMode = supportMode
	return f.steps, f.err
}

func TestCreateTaskWithGeneratedSteps(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	profiles := &fakeProfiles{profile: &entities.Profile{ID: "p1", UserID: "user-1", SupportMode: "adhd"}}
	generator := &fakeGenerator{steps: []string{"Wash dishes", "Wipe counters"}}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)

	task, err := svc.CreateTask(context.Background(), "user-1", "Clean kitchen", "the whole thing")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(task.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(task.Steps))
	}
	if task.Steps[0].Order != 1 || task.Steps[1].Order != 2 {
		t.Errorf("Expected orders [1 2], got [%d %d]", task.Steps[0].Order, task.Steps[1].Order)
	}
	if task.Steps[0].Content != "Wash dishes" || task.Steps[1].Content != "Wipe counters" {
		t.Errorf("Unexpected step contents: %+v", task.Steps)
	}
	if generator.gotTitle != "Clean kitchen" {
		t.Errorf("Generator called with title %q", generator.gotTitle)
	}
	if generator.gotSupportMode != "adhd" {
		t.Errorf("Generator called with support mode %q", generator.gotSupportMode)
	}
}

func TestCreateTaskFallsBackOnGeneratorError(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	profiles := &fakeProfiles{profile: &entities.Profile{ID: "p1", UserID: "user-1", SupportMode: "adhd"}}
	generator := &fakeGenerator{err: errors.New("rate limited")}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)

	task, err := svc.CreateTask(context.Background(), "user-1", "Clean kitchen", "")
	if err != nil {
		t.Fatalf("Task creation must not fail when generation fails, got: %v", err)
	}

	if len(task.Steps) != 5 {
		t.Fatalf("Expected 5 fallback steps, got %d", len(task.Steps))
	}
	for i, step := range task.Steps {
		if step.Order != i+1 {
			t.Errorf("Expected order %d at position %d, got %d", i+1, i, step.Order)
		}
		if step.Content == "" {
			t.Errorf("Fallback step %d is empty", i+1)
		}
	}
	if !strings.Contains(task.Steps[0].Content, "Clean kitchen") {
		t.Errorf("Expected fallback derived from title, got %q", task.Steps[0].Content)
	}
}

func TestCreateTaskFallsBackOnEmptyResult(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	profiles := &fakeProfiles{profile: &entities.Profile{ID: "p1", UserID: "user-1", SupportMode: "adhd"}}
	generator := &fakeGenerator{steps: []string{}}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)

	task, err := svc.CreateTask(context.Background(), "user-1", "Clean kitchen", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(task.Steps) != 5 {
		t.Fatalf("Expected 5 fallback steps for empty generation, got %d", len(task.Steps))
	}
}

func TestCreateTaskWithoutProfileUsesDefaultSupportMode(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	profiles := &fakeProfiles{} // no profile submitted yet
	generator := &fakeGenerator{steps: []string{"One step"}}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)

	if _, err := svc.CreateTask(context.Background(), "user-1", "Clean kitchen", ""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if generator.gotSupportMode != DefaultSupportMode {
		t.Errorf("Expected default support mode %q, got %q", DefaultSupportMode, generator.gotSupportMode)
	}
}

func TestCreateTaskSurfacesStepPersistenceFailure(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	stepRepo.batchErr = errors.New("store unavailable")
	profiles := &fakeProfiles{profile: &entities.Profile{ID: "p1", UserID: "user-1", SupportMode: "adhd"}}
	generator := &fakeGenerator{steps: []string{"One step"}}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)

	if _, err := svc.CreateTask(context.Background(), "user-1", "Clean kitchen", ""); err == nil {
		t.Fatal("Expected error when step persistence fails")
	}

	// The task row was already committed; the partial state is left as-is.
	if len(taskRepo.tasks) != 1 {
		t.Errorf("Expected the task row to remain, found %d tasks", len(taskRepo.tasks))
	}
}

func TestUpdateTaskPartialUpdate(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	profiles := &fakeProfiles{profile: &entities.Profile{ID: "p1", UserID: "user-1", SupportMode: "adhd"}}
	generator := &fakeGenerator{steps: []string{"One step"}}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)
	task, _ := svc.CreateTask(context.Background(), "user-1", "Clean kitchen", "all of it")

	t.Run("only provided fields change", func(t *testing.T) {
		done := true
		updated, err := svc.UpdateTask("user-1", task.ID, &models.UpdateTaskRequest{IsCompleted: &done})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !updated.IsCompleted {
			t.Error("Expected is_completed true")
		}
		if updated.Title != "Clean kitchen" || updated.Description != "all of it" {
			t.Errorf("Untouched fields changed: %+v", updated)
		}
	})

	t.Run("empty payload changes nothing", func(t *testing.T) {
		updated, err := svc.UpdateTask("user-1", task.ID, &models.UpdateTaskRequest{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if updated.Title != "Clean kitchen" || updated.Description != "all of it" || !updated.IsCompleted {
			t.Errorf("Empty update mutated the task: %+v", updated)
		}
	})
}

func TestTaskOwnershipIsolation(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	stepRepo := newFakeStepRepo()
	profiles := &fakeProfiles{profile: &entities.Profile{ID: "p1", UserID: "user-a", SupportMode: "adhd"}}
	generator := &fakeGenerator{steps: []string{"One step"}}

	svc := NewTaskService(taskRepo, stepRepo, profiles, generator)
	task, _ := svc.CreateTask(context.Background(), "user-a", "Private task", "")

	title := "hijacked"
	if _, err := svc.UpdateTask("user-b", task.ID, &models.UpdateTaskRequest{Title: &title}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign update, got %v", err)
	}
	if err := svc.DeleteTask("user-b", task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign delete, got %v", err)
	}

	// The task is untouched for its owner
	if _, err := taskRepo.FindByID(task.ID, "user-a"); err != nil {
		t.Errorf("Owner lost access to their task: %v", err)
	}
}
