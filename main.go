package main

import (
	"log"
	"os"
	"strings"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"JWT_SECRET_KEY",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

func setupRouter(db *gorm.DB, transport services.BusTransport, completer usecase.ChatCompleter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())

	var origins []string
	if raw := utils.GetEnvAsString("CORS_ORIGINS", ""); raw != "" {
		origins = strings.Split(raw, ",")
	}
	router.Use(middleware.CORSMiddleware(origins))

	// Repositories
	userRepo := repository.NewUserRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	tagRepo := repository.NewTagRepo(db)
	eventRepo := repository.NewEventRepo(db)
	convRepo := repository.NewConversationRepo(db)

	// Services
	publisher := services.NewEventPublisher(transport, eventRepo)
	taskService := &usecase.TaskService{
		Tasks:     taskRepo,
		Tags:      tagRepo,
		Publisher: publisher,
	}
	tagService := &usecase.TagService{Tags: tagRepo}
	reminderService := &usecase.ReminderService{Tasks: taskRepo}
	agentService := &usecase.AgentService{
		Tasks:     taskService,
		Completer: completer,
	}

	router.GET("/api/health", func(c *gin.Context) {
		utils.Success(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegisterHandler(c, userRepo)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userRepo)
			})
		}

		// Scheduler-facing sweep endpoints
		jobs := public.Group("/jobs")
		{
			jobs.POST("/check-reminders", func(c *gin.Context) {
				handler.CheckRemindersHandler(c, reminderService, publisher)
			})
			jobs.POST("/check-overdue", func(c *gin.Context) {
				handler.CheckOverdueHandler(c, reminderService, publisher)
			})
		}
	}

	// Protected routes: valid token plus path-owner match
	protected := router.Group("/api/users/:user_id")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.OwnerGuard())
	{
		tasks := protected.Group("/tasks")
		{
			tasks.POST("", func(c *gin.Context) {
				handler.CreateTaskHandler(c, taskService)
			})
			tasks.GET("", func(c *gin.Context) {
				handler.ListTasksHandler(c, taskService)
			})
			tasks.GET("/:id", func(c *gin.Context) {
				handler.GetTaskHandler(c, taskService)
			})
			tasks.PUT("/:id", func(c *gin.Context) {
				handler.UpdateTaskHandler(c, taskService)
			})
			tasks.PATCH("/:id", func(c *gin.Context) {
				handler.PatchTaskHandler(c, taskService)
			})
			tasks.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteTaskHandler(c, taskService)
			})
		}

		tags := protected.Group("/tags")
		{
			tags.POST("", func(c *gin.Context) {
				handler.CreateTagHandler(c, tagService)
			})
			tags.GET("", func(c *gin.Context) {
				handler.ListTagsHandler(c, tagService)
			})
			tags.GET("/:id", func(c *gin.Context) {
				handler.GetTagHandler(c, tagService)
			})
			tags.PUT("/:id", func(c *gin.Context) {
				handler.UpdateTagHandler(c, tagService)
			})
			tags.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteTagHandler(c, tagService)
			})
		}

		protected.GET("/stats/tasks", func(c *gin.Context) {
			handler.TaskStatsHandler(c, taskService)
		})

		protected.POST("/chat", func(c *gin.Context) {
			handler.ChatHandler(c, agentService, convRepo)
		})
	}

	return router
}

func main() {
	dsn := utils.GetEnvAsString("DATABASE_PATH", "data/todo.db")
	db, err := repository.NewDB(dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	var transport services.BusTransport
	if utils.GetEnvAsBool("EVENT_BUS_ENABLED", false) {
		transport = services.NewRedisTransport(
			utils.GetEnvAsString("REDIS_ADDR", "localhost:6379"),
			utils.GetEnvAsString("REDIS_PASSWORD", ""),
			utils.GetEnvAsInt("REDIS_DB", 0),
		)
		log.Println("Event bus transport enabled")
	}

	var completer usecase.ChatCompleter
	if apiKey := utils.GetEnvAsString("OPENAI_API_KEY", ""); apiKey != "" {
		completer = usecase.NewOpenAICompleter(apiKey, utils.GetEnvAsString("OPENAI_MODEL", ""))
		log.Println("Chat completer enabled")
	}

	router := setupRouter(db, transport, completer)

	port := utils.GetEnvAsString("PORT", "8080")
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
