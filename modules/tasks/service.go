package tasks

import (
	"context"
	"time"

	domain "github.com/milobedini/milife-backend/domain/task"
	domainuser "github.com/milobedini/milife-backend/domain/user"
	"github.com/google/uuid"
)

// TaskStore is the catalog persistence capability the service needs.
// *TaskRepository is the concrete GORM-backed implementation.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindMany(ctx context.Context, filters []Filter) ([]*domain.Task, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Task, error)
}

// UserTaskStore is the join-record persistence capability. Removal
// cascades to the pair's completions atomically.
type UserTaskStore interface {
	Create(ctx context.Context, userTask *domain.UserTask) error
	DeleteWithCompletions(ctx context.Context, userID, taskID string) error
	FindUsersByTaskID(ctx context.Context, taskID string) ([]*domainuser.User, error)
}

// CompletionStore is the completion persistence capability. Record
// enforces list membership together with the write.
type CompletionStore interface {
	Record(ctx context.Context, completion *domain.TaskCompletion) (*domain.TaskCompletion, error)
	Find(ctx context.Context, userID, taskID string, date time.Time) (*domain.TaskCompletion, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]*domain.TaskCompletion, error)
	FindByTaskID(ctx context.Context, taskID string) ([]*domain.TaskCompletion, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.TaskCompletion, error)
}

// Service implements the task list and completion rules on top of the
// entity stores. Callers are expected to have resolved the acting user
// already; userID arguments always refer to an authenticated user.
type Service struct {
	tasks       TaskStore
	userTasks   UserTaskStore
	completions CompletionStore
}

// NewService creates a new task Service.
func NewService(tasks TaskStore, userTasks UserTaskStore, completions CompletionStore) *Service {
	return &Service{
		tasks:       tasks,
		userTasks:   userTasks,
		completions: completions,
	}
}

// AllTasks lists the catalog tasks matching the given filters, or all
// tasks when filters is nil.
func (s *Service) AllTasks(ctx context.Context, filters []Filter) ([]*domain.Task, error) {
	return s.tasks.FindMany(ctx, filters)
}

// Task retrieves a single catalog task by ID.
func (s *Service) Task(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// CreateTask inserts a new catalog task.
func (s *Service) CreateTask(ctx context.Context, name string, description *string) (*domain.Task, error) {
	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// MyTasks lists the tasks on the user's personal list.
func (s *Service) MyTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.tasks.FindByUserID(ctx, userID)
}

// AddMyTask adds a catalog task to the user's list. The task must exist
// and must not already be on the list.
func (s *Service) AddMyTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	userTask := &domain.UserTask{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		CreatedAt: time.Now(),
	}
	if err := s.userTasks.Create(ctx, userTask); err != nil {
		return nil, err
	}

	return task, nil
}

// RemoveMyTask removes a task from the user's list and deletes any
// completions recorded for the pair. The store removes both atomically,
// so a failure cannot strand completions without their UserTask.
func (s *Service) RemoveMyTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.userTasks.DeleteWithCompletions(ctx, userID, taskID); err != nil {
		return nil, err
	}

	return task, nil
}

// CompleteTask records that the user completed a task on the given date.
// The task must be on the user's list. Completing the same date twice is
// idempotent: the existing record is marked completed, not duplicated.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID, date string) (*domain.TaskCompletion, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		return nil, err
	}

	// The store checks list membership in the same transaction as the
	// write, so a concurrent removal cannot slip a completion in between.
	return s.completions.Record(ctx, &domain.TaskCompletion{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		Date:      day,
		Completed: true,
		CreatedAt: time.Now(),
	})
}

// UncompleteTask deletes the completion recorded for the given date.
func (s *Service) UncompleteTask(ctx context.Context, userID, taskID, date string) error {
	day, err := ParseDate(date)
	if err != nil {
		return err
	}

	completion, err := s.completions.Find(ctx, userID, taskID, day)
	if err != nil {
		return err
	}

	return s.completions.Delete(ctx, completion.ID)
}

// MyTaskCompletions lists the user's completions, optionally scoped to one
// task and an inclusive date range, ordered by date ascending. Missing
// bounds default to the epoch and the current time.
func (s *Service) MyTaskCompletions(ctx context.Context, userID string, taskID, startDate, endDate *string) ([]*domain.TaskCompletion, error) {
	start := time.Unix(0, 0).UTC()
	end := time.Now().UTC()

	if startDate != nil {
		day, err := ParseDate(*startDate)
		if err != nil {
			return nil, err
		}
		start = day
	}
	if endDate != nil {
		day, err := ParseDate(*endDate)
		if err != nil {
			return nil, err
		}
		end = day
	}

	var scopedTask *string
	if taskID != nil {
		id := *taskID
		scopedTask = &id
	}

	return s.completions.List(ctx, ListParams{
		UserID: userID,
		TaskID: scopedTask,
		Start:  start,
		End:    end,
	})
}

// UsersForTask lists the users who added the task to their list.
func (s *Service) UsersForTask(ctx context.Context, taskID string) ([]*domainuser.User, error) {
	return s.userTasks.FindUsersByTaskID(ctx, taskID)
}

// CompletionsForTask lists all completions for a task across users.
func (s *Service) CompletionsForTask(ctx context.Context, taskID string) ([]*domain.TaskCompletion, error) {
	return s.completions.FindByTaskID(ctx, taskID)
}

// CompletionsForUser lists all completions recorded by a user.
func (s *Service) CompletionsForUser(ctx context.Context, userID string) ([]*domain.TaskCompletion, error) {
	return s.completions.FindByUserID(ctx, userID)
}
