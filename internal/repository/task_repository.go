package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"focusflow-be/internal/entities"
)

// TaskRepository defines the interface for task database operations.
// Every lookup that takes a userID filters on ownership inside the query itself,
// so a task owned by someone else is indistinguishable from a missing one.
type TaskRepository interface {
	Create(userID, title, description string) (*entities.Task, error)
	FindByID(id, userID string) (*entities.Task, error)
	GetByUserID(userID string) ([]*entities.Task, error)
	Update(id, userID string, title, description *string, isCompleted *bool) (*entities.Task, error)
	Delete(id, userID string) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create inserts a new task into the database. The row is committed and its id
// returned before any steps exist, so steps can reference it.
func (r *taskRepository) Create(userID, title, description string) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, description, is_completed, created_at, updated_at
	`

	var task entities.Task
	err := r.db.QueryRow(query, userID, title, description).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task.Steps = []entities.Step{}
	return &task, nil
}

// FindByID finds a task by id, scoped to its owner, with steps attached.
func (r *taskRepository) FindByID(id, userID string) (*entities.Task, error) {
	query := `
		SELECT id, user_id, title, description, is_completed, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	var task entities.Task
	err := r.db.QueryRow(query, id, userID).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	steps, err := r.loadSteps([]string{task.ID})
	if err != nil {
		return nil, err
	}
	task.Steps = steps[task.ID]
	if task.Steps == nil {
		task.Steps = []entities.Step{}
	}

	return &task, nil
}

// GetByUserID retrieves all tasks for a user, each with its steps eagerly loaded.
func (r *taskRepository) GetByUserID(userID string) ([]*entities.Task, error) {
	query := `
		SELECT id, user_id, title, description, is_completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	var ids []string
	for rows.Next() {
		var task entities.Task
		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.IsCompleted,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.Steps = []entities.Step{}
		tasks = append(tasks, &task)
		ids = append(ids, task.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	if len(ids) > 0 {
		steps, err := r.loadSteps(ids)
		if err != nil {
			return nil, err
		}
		for _, task := range tasks {
			if s, ok := steps[task.ID]; ok {
				task.Steps = s
			}
		}
	}

	return tasks, nil
}

// loadSteps fetches the steps for a set of tasks in one query, grouped by task id
// and ordered by step_order within each task.
func (r *taskRepository) loadSteps(taskIDs []string) (map[string][]entities.Step, error) {
	query := `
		SELECT id, task_id, content, step_order, is_completed, created_at
		FROM steps
		WHERE task_id = ANY($1::uuid[])
		ORDER BY task_id, step_order ASC
	`

	rows, err := r.db.Query(query, pq.Array(taskIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	steps := make(map[string][]entities.Step)
	for rows.Next() {
		var step entities.Step
		err := rows.Scan(
			&step.ID,
			&step.TaskID,
			&step.Content,
			&step.Order,
			&step.IsCompleted,
			&step.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps[step.TaskID] = append(steps[step.TaskID], step)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating steps: %w", err)
	}

	return steps, nil
}

// Update changes only the provided fields of a task owned by the user. Nil
// fields are left untouched; with no fields set it just returns the current row.
func (r *taskRepository) Update(id, userID string, title, description *string, isCompleted *bool) (*entities.Task, error) {
	var clauses []string
	var args []interface{}
	n := 1

	if title != nil {
		clauses = append(clauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if description != nil {
		clauses = append(clauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if isCompleted != nil {
		clauses = append(clauses, fmt.Sprintf("is_completed = $%d", n))
		args = append(args, *isCompleted)
		n++
	}

	if len(clauses) == 0 {
		return r.FindByID(id, userID)
	}
	clauses = append(clauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $%d AND user_id = $%d
	`, strings.Join(clauses, ", "), n, n+1)
	args = append(args, id, userID)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(id, userID)
}

// Delete removes a task owned by the user. Steps go with it via the FK cascade.
func (r *taskRepository) Delete(id, userID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
