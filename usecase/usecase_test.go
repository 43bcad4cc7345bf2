package usecase

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"main/model"
	"main/repository"
	"main/services"
)

type testEnv struct {
	db        *gorm.DB
	tasks     *TaskService
	tags      *TagService
	reminders *ReminderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	taskRepo := repository.NewTaskRepo(db)
	tagRepo := repository.NewTagRepo(db)
	publisher := services.NewEventPublisher(nil, repository.NewEventRepo(db))

	return &testEnv{
		db: db,
		tasks: &TaskService{
			Tasks:     taskRepo,
			Tags:      tagRepo,
			Publisher: publisher,
		},
		tags:      &TagService{Tags: tagRepo},
		reminders: &ReminderService{Tasks: taskRepo},
	}
}

func listAllOpts(userID string) repository.SearchOptions {
	return repository.SearchOptions{UserID: userID, Status: "all"}
}

func (e *testEnv) seedUser(t *testing.T, id, email string) {
	t.Helper()
	if err := e.db.Create(&model.User{ID: id, Email: email, PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}
