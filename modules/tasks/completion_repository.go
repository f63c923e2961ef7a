package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/milobedini/milife-backend/domain/task"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCompletionNotFound is returned when a completion record is not found.
var ErrCompletionNotFound = errors.New("completion record not found")

// CompletionRepository manages task completion records.
type CompletionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new CompletionRepository.
func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Record stores a completion, or marks the existing record for the same
// (user, task, date) as completed. Completing a task twice on the same
// date is therefore idempotent. The membership check, the upsert and the
// re-read of the stored row share one transaction, so a completion can
// never be written for a pair whose UserTask is already gone.
func (r *CompletionRepository) Record(ctx context.Context, completion *domain.TaskCompletion) (*domain.TaskCompletion, error) {
	var stored domain.TaskCompletion

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userTask domain.UserTask
		err := tx.First(&userTask, "user_id = ? AND task_id = ?", completion.UserID, completion.TaskID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotInList
			}
			return fmt.Errorf("failed to find user task: %w", err)
		}

		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "task_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"completed": true,
			}),
		}).Create(completion).Error
		if err != nil {
			return fmt.Errorf("failed to upsert completion: %w", err)
		}

		// On a conflicting date the upsert keeps the original row and its
		// ID, so read back what is actually stored.
		err = tx.First(&stored, "user_id = ? AND task_id = ? AND date = ?",
			completion.UserID, completion.TaskID, completion.Date).Error
		if err != nil {
			return fmt.Errorf("failed to read back completion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Find retrieves the completion for a (user, task, date) triple.
func (r *CompletionRepository) Find(ctx context.Context, userID, taskID string, date time.Time) (*domain.TaskCompletion, error) {
	var completion domain.TaskCompletion
	err := r.db.WithContext(ctx).
		First(&completion, "user_id = ? AND task_id = ? AND date = ?", userID, taskID, date).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompletionNotFound
		}
		return nil, fmt.Errorf("failed to find completion: %w", err)
	}
	return &completion, nil
}

// Delete removes a completion by ID.
func (r *CompletionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.TaskCompletion{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete completion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCompletionNotFound
	}
	return nil
}

// ListParams scope a completion listing. TaskID is optional; the date
// bounds are inclusive.
type ListParams struct {
	UserID string
	TaskID *string
	Start  time.Time
	End    time.Time
}

// List retrieves a user's completed records within the date range, ordered
// by date ascending.
func (r *CompletionRepository) List(ctx context.Context, params ListParams) ([]*domain.TaskCompletion, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", params.UserID).
		Where("completed = ?", true).
		Where("date >= ? AND date <= ?", params.Start, params.End)

	if params.TaskID != nil {
		query = query.Where("task_id = ?", *params.TaskID)
	}

	var completions []*domain.TaskCompletion
	if err := query.Order("date ASC").Find(&completions).Error; err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}

// FindByTaskID retrieves all completions for a task across all users.
func (r *CompletionRepository) FindByTaskID(ctx context.Context, taskID string) ([]*domain.TaskCompletion, error) {
	var completions []*domain.TaskCompletion
	if err := r.db.WithContext(ctx).Find(&completions, "task_id = ?", taskID).Error; err != nil {
		return nil, fmt.Errorf("failed to find completions for task: %w", err)
	}
	return completions, nil
}

// FindByUserID retrieves all completions recorded by a user.
func (r *CompletionRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.TaskCompletion, error) {
	var completions []*domain.TaskCompletion
	if err := r.db.WithContext(ctx).Find(&completions, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to find completions for user: %w", err)
	}
	return completions, nil
}
