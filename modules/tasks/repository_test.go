package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	domaintask "github.com/milobedini/milife-backend/domain/task"
	domainuser "github.com/milobedini/milife-backend/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) *domainuser.User {
	t.Helper()
	now := time.Now()
	user := &domainuser.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", email, err)
	}
	return user
}

func seedUserTask(t *testing.T, db *gorm.DB, userID, taskID string) {
	t.Helper()
	userTask := &domaintask.UserTask{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(userTask).Error; err != nil {
		t.Fatalf("failed to seed user task: %v", err)
	}
}

func seedCompletion(t *testing.T, db *gorm.DB, userID, taskID string, date time.Time) *domaintask.TaskCompletion {
	t.Helper()
	completion := &domaintask.TaskCompletion{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		Date:      date,
		Completed: true,
		CreatedAt: time.Now(),
	}
	if err := db.Create(completion).Error; err != nil {
		t.Fatalf("failed to seed completion: %v", err)
	}
	return completion
}

func countCompletions(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&domaintask.TaskCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		t.Fatalf("count error = %v", err)
	}
	return count
}

func TestTaskRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := seedTask(t, db, "Stretch", "Five minutes")

	t.Run("existing task", func(t *testing.T) {
		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Name != "Stretch" {
			t.Errorf("found.Name = %v, want Stretch", found.Name)
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskRepository_FindByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "list@example.com")
	other := seedUser(t, db, "other@example.com")
	mine := seedTask(t, db, "Mine", "")
	alsoMine := seedTask(t, db, "Also mine", "")
	notMine := seedTask(t, db, "Not mine", "")

	seedUserTask(t, db, user.ID, mine.ID)
	seedUserTask(t, db, user.ID, alsoMine.ID)
	seedUserTask(t, db, other.ID, notMine.ID)

	found, err := repo.FindByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("FindByUserID() returned %d tasks, want 2", len(found))
	}
	for _, task := range found {
		if task.ID == notMine.ID {
			t.Error("FindByUserID() returned another user's task")
		}
	}
}

func TestUserTaskRepository_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "dup@example.com")
	task := seedTask(t, db, "Hydrate", "")

	first := &domaintask.UserTask{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TaskID:    task.ID,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second := &domaintask.UserTask{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TaskID:    task.ID,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrAlreadyAdded) {
		t.Errorf("Create() duplicate error = %v, want ErrAlreadyAdded", err)
	}
}

func TestUserTaskRepository_DeleteWithCompletions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "del@example.com")
	task := seedTask(t, db, "Journal", "")
	keep := seedTask(t, db, "Keep", "")

	seedUserTask(t, db, user.ID, task.ID)
	seedUserTask(t, db, user.ID, keep.ID)
	for day := 1; day <= 3; day++ {
		seedCompletion(t, db, user.ID, task.ID, time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC))
	}
	seedCompletion(t, db, user.ID, keep.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if err := repo.DeleteWithCompletions(ctx, user.ID, task.ID); err != nil {
		t.Fatalf("DeleteWithCompletions() error = %v", err)
	}

	if _, err := repo.Find(ctx, user.ID, task.ID); !errors.Is(err, ErrNotInList) {
		t.Errorf("Find() after delete error = %v, want ErrNotInList", err)
	}
	if count := countCompletions(t, db, user.ID); count != 1 {
		t.Errorf("expected only the other task's completion to remain, got %d", count)
	}

	t.Run("missing pair", func(t *testing.T) {
		if err := repo.DeleteWithCompletions(ctx, user.ID, task.ID); !errors.Is(err, ErrNotInList) {
			t.Errorf("DeleteWithCompletions() on missing pair error = %v, want ErrNotInList", err)
		}
	})

	t.Run("pair without completions", func(t *testing.T) {
		bare := seedTask(t, db, "Never completed", "")
		seedUserTask(t, db, user.ID, bare.ID)

		if err := repo.DeleteWithCompletions(ctx, user.ID, bare.ID); err != nil {
			t.Errorf("DeleteWithCompletions() without completions error = %v", err)
		}
	})
}

func TestUserTaskRepository_DeleteWithCompletionsRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserTaskRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "rollback@example.com")
	task := seedTask(t, db, "Walk", "")
	seedUserTask(t, db, user.ID, task.ID)

	// Sabotage the cascade step so it fails after the join record has
	// been deleted inside the transaction.
	if err := db.Migrator().DropTable(&domaintask.TaskCompletion{}); err != nil {
		t.Fatalf("failed to drop completions table: %v", err)
	}

	if err := repo.DeleteWithCompletions(ctx, user.ID, task.ID); err == nil {
		t.Fatal("DeleteWithCompletions() should fail when the cascade cannot run")
	}

	// The whole delete must have rolled back: the pair is still on the list.
	if _, err := repo.Find(ctx, user.ID, task.ID); err != nil {
		t.Errorf("Find() after failed delete error = %v, want the pair intact", err)
	}
}

func TestUserTaskRepository_FindUsersByTaskID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserTaskRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	carol := seedUser(t, db, "carol@example.com")
	task := seedTask(t, db, "Popular task", "")

	seedUserTask(t, db, alice.ID, task.ID)
	seedUserTask(t, db, bob.ID, task.ID)

	users, err := repo.FindUsersByTaskID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindUsersByTaskID() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("FindUsersByTaskID() returned %d users, want 2", len(users))
	}
	for _, user := range users {
		if user.ID == carol.ID {
			t.Error("FindUsersByTaskID() returned a user who never added the task")
		}
	}
}

func TestCompletionRepository_RecordIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompletionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "record@example.com")
	task := seedTask(t, db, "Meditate", "")
	seedUserTask(t, db, user.ID, task.ID)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Record(ctx, &domaintask.TaskCompletion{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TaskID:    task.ID,
		Date:      date,
		Completed: true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// Same (user, task, date) again with a fresh ID: must not duplicate,
	// and the original record survives.
	second, err := repo.Record(ctx, &domaintask.TaskCompletion{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TaskID:    task.ID,
		Date:      date,
		Completed: true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Record() second error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second.ID = %v, want original %v", second.ID, first.ID)
	}
	if !second.Completed {
		t.Error("completion should remain completed")
	}
	if count := countCompletions(t, db, user.ID); count != 1 {
		t.Errorf("expected 1 completion after double record, got %d", count)
	}
}

func TestCompletionRepository_RecordRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompletionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "member@example.com")
	task := seedTask(t, db, "Never added", "")

	// No UserTask pair exists, so the write must be refused.
	_, err := repo.Record(ctx, &domaintask.TaskCompletion{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TaskID:    task.ID,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Completed: true,
		CreatedAt: time.Now(),
	})
	if !errors.Is(err, ErrNotInList) {
		t.Errorf("Record() error = %v, want ErrNotInList", err)
	}
	if count := countCompletions(t, db, user.ID); count != 0 {
		t.Errorf("expected no completion rows, got %d", count)
	}
}

func TestCompletionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompletionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "range@example.com")
	task := seedTask(t, db, "Run", "")
	other := seedTask(t, db, "Swim", "")

	days := []time.Time{
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		seedCompletion(t, db, user.ID, task.ID, day)
	}
	seedCompletion(t, db, user.ID, other.ID, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))

	t.Run("full range is ordered by date ascending", func(t *testing.T) {
		found, err := repo.List(ctx, ListParams{
			UserID: user.ID,
			Start:  time.Unix(0, 0).UTC(),
			End:    time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(found) != 4 {
			t.Fatalf("List() returned %d completions, want 4", len(found))
		}
		for i := 1; i < len(found); i++ {
			if found[i].Date.Before(found[i-1].Date) {
				t.Error("List() results are not ordered by date ascending")
			}
		}
	})

	t.Run("scoped to one task and inclusive bounds", func(t *testing.T) {
		found, err := repo.List(ctx, ListParams{
			UserID: user.ID,
			TaskID: &task.ID,
			Start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(found) != 2 {
			t.Fatalf("List() returned %d completions, want 2 (bounds inclusive)", len(found))
		}
	})
}
