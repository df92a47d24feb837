package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/internal/controller"
	"wikiquiz_backend/internal/repository"
	"wikiquiz_backend/internal/service"
	"wikiquiz_backend/pkg/logger"
	"wikiquiz_backend/pkg/monitoring"
	"wikiquiz_backend/pkg/security"
	"wikiquiz_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	Store  *repository.SessionStore

	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	auth      *service.AuthService
	wikipedia *service.WikipediaService
	ai        *service.AIService
	material  *service.MaterialService
	quiz      *service.QuizService
}

type controllers struct {
	auth     *controller.AuthController
	material *controller.MaterialController
	session  *controller.SessionController
	health   *controller.HealthController
}

func (a *App) initServices(cfg *config.Config, store *repository.SessionStore) *services {
	s := &services{}

	s.auth = service.NewAuthService(cfg)
	s.wikipedia = service.NewWikipediaService(cfg.Wikipedia)
	s.ai = service.NewAIService(cfg.AI)
	s.material = service.NewMaterialService(s.wikipedia, s.ai, store)
	s.quiz = service.NewQuizService(store)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		material: controller.NewMaterialController(s.material),
		session:  controller.NewSessionController(s.quiz),
		health:   controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
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

// RegisterConfigCallback 注册配置热更新回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口
// 原地覆盖配置对象, 持有该指针的组件(认证/中间件)即时生效;
// 已按旧配置建好的上游客户端不受影响
func (a *App) ReloadConfig(newCfg *config.Config) {
	*a.Config = *newCfg
	logger.Log.Info("config reloaded")

	for _, callback := range a.configCallbacks {
		callback(a.Config)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app := &App{
		Config: cfg,
		Store:  repository.NewSessionStore(),
	}

	app.services = app.initServices(cfg, app.Store)
	controllers := app.initControllers(app.services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("wikiquiz-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers)

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

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
