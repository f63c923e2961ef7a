package tasks

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/milobedini/milife-backend/domain/task"
	domainuser "github.com/milobedini/milife-backend/domain/user"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyAdded is returned when a user re-adds a task already on their list.
	ErrAlreadyAdded = errors.New("task already added to your list")
	// ErrNotInList is returned when a task is not on the user's list.
	ErrNotInList = errors.New("task not in your list")
)

// UserTaskRepository manages the user/task join records.
type UserTaskRepository struct {
	db *gorm.DB
}

// NewUserTaskRepository creates a new UserTaskRepository.
func NewUserTaskRepository(db *gorm.DB) *UserTaskRepository {
	return &UserTaskRepository{db: db}
}

// Create adds a task to a user's list. The unique index on
// (user_id, task_id) rejects duplicate pairs.
func (r *UserTaskRepository) Create(ctx context.Context, userTask *domain.UserTask) error {
	if err := r.db.WithContext(ctx).Create(userTask).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyAdded
		}
		return fmt.Errorf("failed to create user task: %w", err)
	}
	return nil
}

// Find retrieves the join record for a (user, task) pair.
func (r *UserTaskRepository) Find(ctx context.Context, userID, taskID string) (*domain.UserTask, error) {
	var userTask domain.UserTask
	err := r.db.WithContext(ctx).
		First(&userTask, "user_id = ? AND task_id = ?", userID, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInList
		}
		return nil, fmt.Errorf("failed to find user task: %w", err)
	}
	return &userTask, nil
}

// DeleteWithCompletions removes a task from a user's list together with
// every completion recorded for the pair. Both deletes run in a single
// transaction: either the join record and its completions all go, or
// nothing does, so completions never outlive their UserTask.
func (r *UserTaskRepository) DeleteWithCompletions(ctx context.Context, userID, taskID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.UserTask{}, "user_id = ? AND task_id = ?", userID, taskID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user task: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotInList
		}

		err := tx.Delete(&domain.TaskCompletion{}, "user_id = ? AND task_id = ?", userID, taskID).Error
		if err != nil {
			return fmt.Errorf("failed to delete completions for user task: %w", err)
		}
		return nil
	})
}

// FindUsersByTaskID retrieves the users who added the given task, joined
// through user_tasks.
func (r *UserTaskRepository) FindUsersByTaskID(ctx context.Context, taskID string) ([]*domainuser.User, error) {
	var users []*domainuser.User
	err := r.db.WithContext(ctx).
		Model(&domainuser.User{}).
		Joins("JOIN user_tasks ON user_tasks.user_id = users.id").
		Where("user_tasks.task_id = ?", taskID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users for task: %w", err)
	}
	return users, nil
}
