package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/huynhhaigiang/cadico-api/internal/config"
	"github.com/huynhhaigiang/cadico-api/internal/middleware"
	planentity "github.com/huynhhaigiang/cadico-api/internal/plan/entity"
	planhandler "github.com/huynhhaigiang/cadico-api/internal/plan/handler"
	planrepo "github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	plansvc "github.com/huynhhaigiang/cadico-api/internal/plan/service"
	"github.com/huynhhaigiang/cadico-api/internal/storage"
	supplyentity "github.com/huynhhaigiang/cadico-api/internal/supply/entity"
	supplyhandler "github.com/huynhhaigiang/cadico-api/internal/supply/handler"
	supplyrepo "github.com/huynhhaigiang/cadico-api/internal/supply/repository"
	supplysvc "github.com/huynhhaigiang/cadico-api/internal/supply/service"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	if err := autoMigrate(db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis, logger)

	var store *storage.Client
	if cfg.MinIO.Endpoint != "" {
		store, err = storage.New(cfg.MinIO)
		if err != nil {
			logger.Fatal("init minio", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.EnsureBucket(ctx); err != nil {
			logger.Warn("ensure bucket", zap.Error(err))
		}
		cancel()
	} else {
		logger.Warn("minio not configured, file upload disabled")
	}

	// plan side
	planRepos := planrepo.NewRepositories(db)
	planServices := plansvc.NewServices(planRepos, rdb, cfg, logger)
	planHandlers := planhandler.NewHandlers(planServices, store)

	// supply side, sharing the plan module's notification pipeline
	supplyRepos := supplyrepo.NewRepositories(db)
	supplyServices := supplysvc.NewServices(supplyRepos, planServices.Notification, userFinder{planRepos.User}, logger)
	supplyHandlers := supplyhandler.NewHandlers(supplyServices)

	planServices.Notification.AddReminderSource(ticketReminderSource{supplyServices.Ticket})
	reminderCron := planServices.Notification.StartReminderJob()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/sse/events"})))

	registerRoutes(router, cfg, planHandlers, supplyHandlers)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout stays zero: SSE connections are long-lived
		WriteTimeout: 0,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	reminderCron.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func initDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&planentity.User{},
		&planentity.Construction{},
		&planentity.Investor{},
		&planentity.Unit{},
		&planentity.WorkType{},
		&planentity.WorkItem{},
		&planentity.Team{},
		&planentity.Plan{},
		&planentity.PlanWorkload{},
		&planentity.PlanCost{},
		&planentity.PlanOtherCost{},
		&planentity.PlanMaterial{},
		&planentity.ProgressLog{},
		&planentity.Notification{},
		&supplyentity.MaterialType{},
		&supplyentity.MaterialComposition{},
		&supplyentity.SupplyTicket{},
		&supplyentity.SupplyTicketItem{},
	)
}

func initRedis(cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	if cfg.Host == "" {
		logger.Warn("redis not configured, refresh tokens disabled")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable", zap.Error(err))
	}
	return rdb
}

// userFinder adapts the plan user repository to the supply module.
type userFinder struct {
	repo *planrepo.UserRepository
}

func (u userFinder) Exists(ctx context.Context, userID string) bool {
	_, err := u.repo.FindByID(ctx, userID)
	return err == nil
}

// ticketReminderSource feeds overdue supply tickets into the daily
// reminder sweep.
type ticketReminderSource struct {
	svc *supplysvc.TicketService
}

func (t ticketReminderSource) PendingReminders(ctx context.Context, cutoff time.Time) ([]plansvc.ReminderItem, error) {
	tickets, err := t.svc.FindPendingSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	items := make([]plansvc.ReminderItem, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.NextApproverID == nil {
			continue
		}
		items = append(items, plansvc.ReminderItem{
			UserID:     *ticket.NextApproverID,
			Title:      "Phiếu cung ứng chờ duyệt quá hạn",
			Content:    "Phiếu " + ticket.Code + " đang chờ bạn phê duyệt hơn 24 giờ",
			EntityType: planentity.NotificationEntityTicket,
			EntityID:   ticket.ID,
		})
	}
	return items, nil
}
