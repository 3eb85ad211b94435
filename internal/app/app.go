package app

import (
	"context"
	"course_assistant_backend/internal/config"
	"course_assistant_backend/internal/controller"
	"course_assistant_backend/internal/model"
	"course_assistant_backend/internal/repository"
	"course_assistant_backend/internal/service"
	"course_assistant_backend/pkg/database"
	"course_assistant_backend/pkg/logger"
	"course_assistant_backend/pkg/monitoring"
	"course_assistant_backend/pkg/security"
	"course_assistant_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB

	// 当前配置快照，配置热更新时整体替换
	current atomic.Pointer[config.Config]
}

type repositories struct {
	questionLog *repository.QuestionLogRepository
}

type services struct {
	assistant *service.AssistantService
}

type controllers struct {
	assistant *controller.AssistantController
	widget    *controller.WidgetController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		questionLog: repository.NewQuestionLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories) *services {
	s := &services{}

	ragClient := service.NewRAGClient()
	s.assistant = service.NewAssistantService(repos.questionLog, ragClient, a.AssistantConfig)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	authorizer := service.NewRoleAuthorizer(model.Student, model.Teacher, model.Admin)

	return &controllers{
		assistant: controller.NewAssistantController(s.assistant, authorizer),
		widget:    controller.NewWidgetController(a.AssistantConfig),
		health:    controller.NewHealthController(db),
	}
}

// AssistantConfig 返回最新的助手配置快照，每个请求读一次
func (a *App) AssistantConfig() config.AssistantConfig {
	return a.current.Load().Assistant
}

// ApplyConfig 配置热更新回调，管理员改完设置后无需重启
func (a *App) ApplyConfig(cfg *config.Config) {
	a.current.Store(cfg)
	logger.Log.Info("configuration reloaded",
		zap.String("service_url", cfg.Assistant.ServiceURL),
		zap.Int("timeout", cfg.Assistant.Timeout),
		zap.Bool("enable_logging", cfg.Assistant.EnableLogging),
		zap.Int("max_question_length", cfg.Assistant.MaxQuestionLength),
	)
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	app.current.Store(cfg)

	repos := app.initRepositories(db)
	services := app.initServices(repos)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("course-assistant", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
