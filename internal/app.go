package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imageresizer/config"
	"imageresizer/internal/application/ports"
	"imageresizer/internal/application/services"
	"imageresizer/internal/domain/user"
	"imageresizer/internal/infrastructure/codec"
	memuser "imageresizer/internal/infrastructure/db/memory/user"
	"imageresizer/internal/infrastructure/db/postgres"
	pguser "imageresizer/internal/infrastructure/db/postgres/user"
	"imageresizer/internal/infrastructure/jwt"
	"imageresizer/internal/infrastructure/metrics"
	"imageresizer/internal/infrastructure/mq"
	"imageresizer/internal/infrastructure/ratelimit"
	"imageresizer/internal/infrastructure/storage"
	"imageresizer/internal/interface/api/rest"
	"imageresizer/internal/interface/api/rest/middleware"
	"imageresizer/pkg/rmqconsumer"
)

const (
	authThrottleMessage  = "Too many authentication attempts, please try again later."
	imageThrottleMessage = "Too many image operations, please try again later."
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	redis      *redis.Client
	storage    *storage.Local
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         *mq.RabbitMQ
	mqConsumer *rmqconsumer.Consumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config; a missing .env is fine, the environment may be set directly
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	r, err := newRouter(cfg, logger, mCounter)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	// httpServer
	httpSrv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// storage
	st, err := storage.New(afero.NewOsFs(), cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Info("storage ready", zap.String("dir", st.Root()))

	app := &App{
		logger:   logger,
		cfg:      cfg,
		storage:  st,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
	}

	// db
	if cfg.PostgresEnabled() {
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			logger.Fatal("DB config error", zap.Error(err))
		}
		app.db, err = postgres.New(ctx, logger, dbDsn)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err = postgres.Migrate(ctx, logger, app.db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	} else {
		logger.Warn("POSTGRES_HOST not set, users are kept in memory")
	}

	// redis
	if cfg.RedisEnabled() {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err = app.redis.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		logger.Info("redis connected successfully")
	}

	// rabbitMQ
	if cfg.MQEnabled() {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		app.mq = mq.New(cfg.MQ, logger)
		if err = app.mq.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = app.mq.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		// rmqConsumer shares the publisher connection
		app.mqConsumer = rmqconsumer.New(cfg.MQ, logger, app.mq.GetConn())
		if err = app.mqConsumer.Init(mq.BindingKeys); err != nil {
			logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
		}
	}

	return app, nil
}

// newRouter builds the engine with the global middleware chain. Client
// addresses come from the socket unless the peer is a configured proxy.
func newRouter(cfg config.Config, logger *zap.Logger, mCounter *prometheus.CounterVec) (*gin.Engine, error) {
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.App.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if gin.Mode() == gin.DebugMode {
		pprof.Register(r, rest.RouteApi+"/debug/pprof")
	}

	return r, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	var userRepo user.Repository = memuser.NewRepository()
	if a.db != nil {
		userRepo = pguser.NewRepository(a.db)
	}

	// events
	var events ports.EventPublisher = mq.Nop{}
	if a.mq != nil {
		events = a.mq
	}

	// rate limits
	var limitStore ratelimit.Store = ratelimit.NewMemory(a.cfg.RateLimit.Window)
	if a.redis != nil {
		limitStore = ratelimit.NewRedis(a.redis, a.cfg.App.Name+":ratelimit:")
	}
	authLimiter := ratelimit.New(limitStore, ratelimit.Policy{
		Name:    "auth",
		Limit:   a.cfg.RateLimit.AuthMax,
		Window:  a.cfg.RateLimit.Window,
		Message: authThrottleMessage,
	})
	imageLimiter := ratelimit.New(limitStore, ratelimit.Policy{
		Name:    "image",
		Limit:   a.cfg.RateLimit.ImageMax,
		Window:  a.cfg.RateLimit.Window,
		Message: imageThrottleMessage,
	})

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret, a.cfg.App.JWTTTL)
	authService := services.NewAuthService(jwtService)
	userService := services.NewUserService(userRepo, events, a.mCounter)
	imageService := services.NewImageService(
		a.storage,
		codec.New(),
		events,
		a.mCounter,
		a.logger,
		a.cfg.Storage.MaxUploadBytes,
	)

	// controllers
	rest.NewAuthController(
		a.router,
		a.logger,
		userService,
		authService,
		jwtService,
		middleware.RateLimit(authLimiter, a.logger, a.mCounter),
	)
	rest.NewImageController(
		a.router,
		imageService,
		a.logger,
		jwtService,
		middleware.RateLimit(imageLimiter, a.logger, a.mCounter),
		a.cfg.Storage.MaxUploadBytes,
	)

	// static
	a.router.StaticFS(rest.RouteUploads, a.storage.HTTPFileSystem())

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
