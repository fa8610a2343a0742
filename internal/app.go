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
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"audio-vault-api/config"
	"audio-vault-api/internal/application/ports"
	"audio-vault-api/internal/application/services"
	"audio-vault-api/internal/infrastructure/db/postgres"
	audiofileRepo "audio-vault-api/internal/infrastructure/db/postgres/audiofile"
	userRepoPG "audio-vault-api/internal/infrastructure/db/postgres/user"
	"audio-vault-api/internal/infrastructure/jwt"
	"audio-vault-api/internal/infrastructure/metrics"
	"audio-vault-api/internal/infrastructure/mq"
	"audio-vault-api/internal/infrastructure/storage"
	"audio-vault-api/internal/infrastructure/yandex"
	"audio-vault-api/internal/interface/api/rest"
	"audio-vault-api/internal/interface/api/rest/middleware"
	"audio-vault-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	store      ports.BlobStore
	provider   ports.OAuthProvider
	jwtService *jwt.Service
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file, relying on the environment", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// audio storage
	store, err := storage.NewLocal(logger, cfg.Audio.StorageDir)
	if err != nil {
		logger.Fatal("failed to prepare audio storage", zap.Error(err))
	}

	// oauth provider
	provider := yandex.New(logger, cfg.Yandex)

	// jwt
	jwtService, err := jwt.New(cfg.App.JWTSecret, cfg.App.JWTAlg, cfg.App.JWTExpire)
	if err != nil {
		logger.Fatal("jwt config error", zap.Error(err))
	}

	app := &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		store:      store,
		provider:   provider,
		jwtService: jwtService,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
	}

	// rabbitMQ is an optional audit pipeline, the request path never blocks
	// on it
	if cfg.MQEnabled() {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rbMQ := mq.New(cfg.MQ, logger)
		if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rbMQ.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}

		rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
		if err = rmqConsumer.Connect(rabbitDsn); err != nil {
			logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
		}
		if err = rmqConsumer.Init(); err != nil {
			logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
		}

		app.mq = rbMQ
		app.mqConsumer = rmqConsumer
	}

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
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
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
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
	userRepo := userRepoPG.NewRepository(a.db)
	audioFileRepo := audiofileRepo.NewRepository(a.db)

	// services
	authService := services.NewAuthService(a.provider, userRepo, a.jwtService, a.mq, a.mCounter)
	userService := services.NewUserService(a.logger, userRepo, audioFileRepo, a.store, a.mq, a.mCounter)
	audioService := services.NewAudioFileService(a.logger, a.cfg.Audio, a.store, audioFileRepo, a.mq, a.mCounter)

	// controllers
	authMW := middleware.AuthMiddleware(a.jwtService, userRepo, a.logger)
	rest.NewAuthController(a.router, a.logger, a.cfg.Yandex, authService)
	rest.NewUserController(a.router, userService, a.logger, authMW)
	rest.NewAudioController(a.router, audioService, a.logger, authMW)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) {
		if err := a.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
