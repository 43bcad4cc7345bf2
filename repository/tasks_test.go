package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"main/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// One connection keeps the in-memory database alive for the whole test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) {
	t.Helper()
	user := &model.User{ID: id, Email: email, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func seedTask(t *testing.T, repo *TaskRepo, task *model.Task) *model.Task {
	t.Helper()
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task %q: %v", task.Title, err)
	}
	return task
}

func TestTaskRepoOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")
	seedUser(t, db, "bob", "bob@example.com")
	task := seedTask(t, repo, &model.Task{UserID: "alice", Title: "private"})

	if _, err := repo.GetByID(ctx, "alice", task.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	if _, err := repo.GetByID(ctx, "bob", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner read: want ErrNotFound, got %v", err)
	}
	if _, err := repo.SetCompleted(ctx, "bob", task.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner complete: want ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "bob", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner delete: want ErrNotFound, got %v", err)
	}

	// The owner's record must be untouched by the failed attempts.
	got, err := repo.GetByID(ctx, "alice", task.ID)
	if err != nil {
		t.Fatalf("owner re-read failed: %v", err)
	}
	if got.Completed {
		t.Fatal("cross-owner attempt mutated the task")
	}
}

func TestTaskRepoFindTagConjunction(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	tags := NewTagRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")

	both, err := tags.FindOrCreateByName(ctx, "alice", []string{"work", "urgent-q3"})
	if err != nil {
		t.Fatalf("create tags: %v", err)
	}
	workOnly, err := tags.FindOrCreateByName(ctx, "alice", []string{"work"})
	if err != nil {
		t.Fatalf("create tags: %v", err)
	}

	seedTask(t, repo, &model.Task{UserID: "alice", Title: "tagged both", Tags: both})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "tagged one", Tags: workOnly})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "untagged"})

	results, total, err := repo.Find(ctx, SearchOptions{
		UserID: "alice",
		Tags:   []string{"work", "urgent-q3"},
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("want exactly one match, got total=%d len=%d", total, len(results))
	}
	if results[0].Title != "tagged both" {
		t.Fatalf("want task carrying every tag, got %q", results[0].Title)
	}
}

func TestTaskRepoFindPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")
	for i := 0; i < 25; i++ {
		seedTask(t, repo, &model.Task{UserID: "alice", Title: "task"})
	}

	cases := []struct {
		page     int
		wantRows int
	}{
		{page: 1, wantRows: 10},
		{page: 2, wantRows: 10},
		{page: 3, wantRows: 5},
		{page: 4, wantRows: 0},
	}
	for _, tc := range cases {
		results, total, err := repo.Find(ctx, SearchOptions{
			UserID:   "alice",
			Page:     tc.page,
			PageSize: 10,
		})
		if err != nil {
			t.Fatalf("page %d: %v", tc.page, err)
		}
		if total != 25 {
			t.Errorf("page %d: total = %d, want 25", tc.page, total)
		}
		if len(results) != tc.wantRows {
			t.Errorf("page %d: rows = %d, want %d", tc.page, len(results), tc.wantRows)
		}
	}
}

func TestTaskRepoFindPrioritySort(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "m", Priority: model.PriorityMedium})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "u", Priority: model.PriorityUrgent})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "l", Priority: model.PriorityLow})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "h", Priority: model.PriorityHigh})

	results, _, err := repo.Find(ctx, SearchOptions{
		UserID:    "alice",
		SortBy:    "priority",
		SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	var got []string
	for _, task := range results {
		got = append(got, task.Title)
	}
	want := []string{"u", "h", "m", "l"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("priority order = %v, want %v", got, want)
		}
	}
}

func TestTaskRepoFindPriorityFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "a", Priority: model.PriorityLow})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "b", Priority: model.PriorityHigh})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "c", Priority: model.PriorityUrgent})

	_, total, err := repo.Find(ctx, SearchOptions{
		UserID:     "alice",
		Priorities: []model.Priority{model.PriorityHigh, model.PriorityUrgent},
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
}

func TestTaskRepoDueReminders(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")
	now := time.Now().UTC()

	inWindow := now.Add(30 * time.Minute)
	outOfWindow := now.Add(90 * time.Minute)
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "soon", ReminderTime: &inWindow})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "later", ReminderTime: &outOfWindow})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "done", ReminderTime: &inWindow, Completed: true})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "no reminder"})

	rows, err := repo.DueReminders(ctx, now, 60*time.Minute)
	if err != nil {
		t.Fatalf("due reminders: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Title != "soon" || rows[0].UserEmail != "alice@example.com" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestTaskRepoOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")
	now := time.Now().UTC()

	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "late", DueDate: &past})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "on time", DueDate: &future})
	seedTask(t, repo, &model.Task{UserID: "alice", Title: "finished late", DueDate: &past, Completed: true})

	rows, err := repo.Overdue(ctx, now)
	if err != nil {
		t.Fatalf("overdue: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Title != "late" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}
