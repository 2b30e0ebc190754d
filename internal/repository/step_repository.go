package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"focusflow-be/internal/entities"
)

// StepRepository defines the interface for step database operations. Steps are
// never resolved by id alone: every query joins through tasks and requires
// tasks.user_id to match, so the ownership chain is proven at query time.
type StepRepository interface {
	Create(taskID, userID, content string, order int) (*entities.Step, error)
	CreateBatch(taskID string, contents []string) ([]entities.Step, error)
	GetByTaskID(taskID, userID string) ([]entities.Step, error)
	Update(id, taskID, userID string, content *string, isCompleted *bool) (*entities.Step, error)
	Delete(id, taskID, userID string) error
}

type stepRepository struct {
	db *sql.DB
}

// NewStepRepository creates a new step repository
func NewStepRepository(db *sql.DB) StepRepository {
	return &stepRepository{db: db}
}

// Create inserts a single step with a caller-supplied order, but only if the
// task belongs to the user. Duplicate or gapped orders are allowed.
func (r *stepRepository) Create(taskID, userID, content string, order int) (*entities.Step, error) {
	query := `
		INSERT INTO steps (task_id, content, step_order)
		SELECT t.id, $3, $4
		FROM tasks t
		WHERE t.id = $1 AND t.user_id = $2
		RETURNING id, task_id, content, step_order, is_completed, created_at
	`

	var step entities.Step
	err := r.db.QueryRow(query, taskID, userID, content, order).Scan(
		&step.ID,
		&step.TaskID,
		&step.Content,
		&step.Order,
		&step.IsCompleted,
		&step.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create step: %w", err)
	}

	return &step, nil
}

// CreateBatch inserts the generated steps for a task as one transaction, with
// step_order assigned from position (1-based). The task row already exists and
// is committed by the time this runs.
func (r *stepRepository) CreateBatch(taskID string, contents []string) ([]entities.Step, error) {
	if len(contents) == 0 {
		return []entities.Step{}, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO steps (task_id, content, step_order)
		VALUES ($1, $2, $3)
		RETURNING id, task_id, content, step_order, is_completed, created_at
	`

	steps := make([]entities.Step, 0, len(contents))
	for i, content := range contents {
		var step entities.Step
		err := tx.QueryRow(query, taskID, content, i+1).Scan(
			&step.ID,
			&step.TaskID,
			&step.Content,
			&step.Order,
			&step.IsCompleted,
			&step.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create step %d: %w", i+1, err)
		}
		steps = append(steps, step)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit steps: %w", err)
	}

	return steps, nil
}

// GetByTaskID retrieves a task's steps ordered by step_order. The task must
// belong to the user; a task owned by someone else yields ErrNotFound, never an
// empty list.
func (r *stepRepository) GetByTaskID(taskID, userID string) ([]entities.Step, error) {
	var owned bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)`,
		taskID, userID,
	).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task: %w", err)
	}
	if !owned {
		return nil, ErrNotFound
	}

	query := `
		SELECT s.id, s.task_id, s.content, s.step_order, s.is_completed, s.created_at
		FROM steps s
		JOIN tasks t ON t.id = s.task_id
		WHERE s.task_id = $1 AND t.user_id = $2
		ORDER BY s.step_order ASC
	`

	rows, err := r.db.Query(query, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	steps := []entities.Step{}
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
		steps = append(steps, step)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating steps: %w", err)
	}

	return steps, nil
}

// Update changes only the provided fields of a step, resolved through the full
// ownership chain (step id, task id, task owner).
func (r *stepRepository) Update(id, taskID, userID string, content *string, isCompleted *bool) (*entities.Step, error) {
	var clauses []string
	var args []interface{}
	n := 1

	if content != nil {
		clauses = append(clauses, fmt.Sprintf("content = $%d", n))
		args = append(args, *content)
		n++
	}
	if isCompleted != nil {
		clauses = append(clauses, fmt.Sprintf("is_completed = $%d", n))
		args = append(args, *isCompleted)
		n++
	}

	if len(clauses) == 0 {
		return r.findByID(id, taskID, userID)
	}

	query := fmt.Sprintf(`
		UPDATE steps s
		SET %s
		FROM tasks t
		WHERE s.id = $%d AND s.task_id = $%d AND t.id = s.task_id AND t.user_id = $%d
	`, strings.Join(clauses, ", "), n, n+1, n+2)
	args = append(args, id, taskID, userID)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update step: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.findByID(id, taskID, userID)
}

// Delete removes a step, resolved through the full ownership chain.
func (r *stepRepository) Delete(id, taskID, userID string) error {
	query := `
		DELETE FROM steps s
		USING tasks t
		WHERE s.id = $1 AND s.task_id = $2 AND t.id = s.task_id AND t.user_id = $3
	`

	result, err := r.db.Exec(query, id, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete step: %w", err)
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

func (r *stepRepository) findByID(id, taskID, userID string) (*entities.Step, error) {
	query := `
		SELECT s.id, s.task_id, s.content, s.step_order, s.is_completed, s.created_at
		FROM steps s
		JOIN tasks t ON t.id = s.task_id
		WHERE s.id = $1 AND s.task_id = $2 AND t.user_id = $3
	`

	var step entities.Step
	err := r.db.QueryRow(query, id, taskID, userID).Scan(
		&step.ID,
		&step.TaskID,
		&step.Content,
		&step.Order,
		&step.IsCompleted,
		&step.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find step: %w", err)
	}

	return &step, nil
}
