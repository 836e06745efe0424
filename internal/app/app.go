package app

import (
	"context"
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/controller"
	"e_learn_backend/internal/repository"
	"e_learn_backend/internal/service"
	"e_learn_backend/pkg/database"
	"e_learn_backend/pkg/logger"
	"e_learn_backend/pkg/monitoring"
	"e_learn_backend/pkg/security"
	"e_learn_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	token      *repository.TokenRepository
	content    *repository.ContentRepository
	progress   *repository.ProgressRepository
	question   *repository.QuestionRepository
	comment    *repository.CommentRepository
	vocabulary *repository.VocabularyRepository
	image      *repository.ImageRepository
}

type services struct {
	storage    *service.StorageService
	mail       *service.MailService
	token      *service.TokenService
	auth       *service.AuthService
	oauth      *service.OAuthService
	content    *service.ContentService
	comment    *service.CommentService
	vocabulary *service.VocabularyService
	user       *service.UserService
	reminder   *service.ReminderService
}

type controllers struct {
	auth       *controller.AuthController
	oauth      *controller.OAuthController
	content    *controller.ContentController
	comment    *controller.CommentController
	vocabulary *controller.VocabularyController
	user       *controller.UserController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		token:      repository.NewTokenRepository(db),
		content:    repository.NewContentRepository(db),
		progress:   repository.NewProgressRepository(db),
		question:   repository.NewQuestionRepository(db),
		comment:    repository.NewCommentRepository(db),
		vocabulary: repository.NewVocabularyRepository(db),
		image:      repository.NewImageRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.mail = service.NewMailService(cfg)
	s.token = service.NewTokenService(repos.token, cfg.Activation.TokenTTLMinutes)
	s.auth = service.NewAuthService(repos.user, s.token, s.mail, cfg)
	s.oauth = service.NewOAuthService(repos.user, repos.image, s.storage)
	s.content = service.NewContentService(repos.content, repos.progress, repos.question, cfg, rdb)
	s.comment = service.NewCommentService(repos.comment, repos.content)
	s.vocabulary = service.NewVocabularyService(repos.vocabulary, repos.content)
	s.user = service.NewUserService(repos.user)
	s.reminder = service.NewReminderService(repos.user, s.mail, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		oauth:      controller.NewOAuthController(s.oauth, a.Config),
		content:    controller.NewContentController(s.content),
		comment:    controller.NewCommentController(s.comment),
		vocabulary: controller.NewVocabularyController(s.vocabulary),
		user:       controller.NewUserController(s.user),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	if cfg.Reminder.Enabled {
		if err := s.reminder.Start(); err != nil {
			logger.Log.Error("reminder scheduler failed to start", zap.Error(err))
		}
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("e-learn-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, cfg)

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

	// 停掉提醒调度器并等邮件队列排空
	if a.services != nil {
		a.services.reminder.Stop()
		a.services.mail.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
