package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	os.Setenv("GO_ENV", "test")
	os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	gin.SetMode(gin.TestMode)
	utils.InitJWT()
	utils.InitValidator()
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	agent  *usecase.AgentService
}

func newTestServer(t *testing.T) *testServer {
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

	userRepo := repository.NewUserRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	tagRepo := repository.NewTagRepo(db)
	eventRepo := repository.NewEventRepo(db)
	convRepo := repository.NewConversationRepo(db)

	publisher := services.NewEventPublisher(nil, eventRepo)
	taskService := &usecase.TaskService{Tasks: taskRepo, Tags: tagRepo, Publisher: publisher}
	tagService := &usecase.TagService{Tags: tagRepo}
	reminderService := &usecase.ReminderService{Tasks: taskRepo}
	agentService := &usecase.AgentService{Tasks: taskService}

	router := gin.New()

	auth := router.Group("/api/auth")
	auth.POST("/register", func(c *gin.Context) { RegisterHandler(c, userRepo) })
	auth.POST("/login", func(c *gin.Context) { LoginHandler(c, userRepo) })

	jobs := router.Group("/api/jobs")
	jobs.POST("/check-reminders", func(c *gin.Context) { CheckRemindersHandler(c, reminderService, publisher) })
	jobs.POST("/check-overdue", func(c *gin.Context) { CheckOverdueHandler(c, reminderService, publisher) })

	protected := router.Group("/api/users/:user_id")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.OwnerGuard())
	{
		protected.POST("/tasks", func(c *gin.Context) { CreateTaskHandler(c, taskService) })
		protected.GET("/tasks", func(c *gin.Context) { ListTasksHandler(c, taskService) })
		protected.GET("/tasks/:id", func(c *gin.Context) { GetTaskHandler(c, taskService) })
		protected.PUT("/tasks/:id", func(c *gin.Context) { UpdateTaskHandler(c, taskService) })
		protected.PATCH("/tasks/:id", func(c *gin.Context) { PatchTaskHandler(c, taskService) })
		protected.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTaskHandler(c, taskService) })

		protected.POST("/tags", func(c *gin.Context) { CreateTagHandler(c, tagService) })
		protected.GET("/tags", func(c *gin.Context) { ListTagsHandler(c, tagService) })
		protected.GET("/tags/:id", func(c *gin.Context) { GetTagHandler(c, tagService) })
		protected.PUT("/tags/:id", func(c *gin.Context) { UpdateTagHandler(c, tagService) })
		protected.DELETE("/tags/:id", func(c *gin.Context) { DeleteTagHandler(c, tagService) })

		protected.GET("/stats/tasks", func(c *gin.Context) { TaskStatsHandler(c, taskService) })
		protected.POST("/chat", func(c *gin.Context) { ChatHandler(c, agentService, convRepo) })
	}

	return &testServer{router: router, db: db, agent: agentService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the API and returns (userID, token).
func (s *testServer) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
			User        struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.AccessToken == "" || resp.Data.User.ID == "" {
		t.Fatalf("incomplete login response: %s", w.Body.String())
	}
	return resp.Data.User.ID, resp.Data.AccessToken
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &wrapper); err != nil {
		t.Fatalf("decode wrapper: %v (%s)", err, w.Body.String())
	}
	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, w.Body.String())
	}
}
