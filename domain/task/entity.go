package task

import (
	"time"
)

// Task is a catalog entry. Tasks are shared: many users may add the same
// task to their personal list.
type Task struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"size:200;not null"`
	Description *string `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// UserTask records that a user has added a catalog task to their personal
// list. The (user_id, task_id) pair is unique; re-adding is a conflict,
// not a duplicate row.
type UserTask struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"uniqueIndex:idx_user_task;size:36;not null"`
	TaskID    string `gorm:"uniqueIndex:idx_user_task;size:36;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for the UserTask entity.
func (UserTask) TableName() string {
	return "user_tasks"
}

// TaskCompletion records that a user completed a task on a calendar date.
// Date is normalized to UTC midnight; (user_id, task_id, date) is unique.
// Completions exist only while the matching UserTask exists: removing a
// task from a list deletes its completions as well.
type TaskCompletion struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"uniqueIndex:idx_user_task_date;size:36;not null"`
	TaskID    string    `gorm:"uniqueIndex:idx_user_task_date;size:36;not null"`
	Date      time.Time `gorm:"uniqueIndex:idx_user_task_date;not null"`
	Completed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName returns the table name for the TaskCompletion entity.
func (TaskCompletion) TableName() string {
	return "task_completions"
}
