package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"genai-chat/internal/cache"
	"genai-chat/internal/config"
	"genai-chat/internal/model"
	"genai-chat/internal/platform/logger"
	mysqlClient "genai-chat/internal/platform/mysql"
	rabbitmqClient "genai-chat/internal/platform/rabbitmq"
	redisClient "genai-chat/internal/platform/redis"
	"genai-chat/internal/repository"
	"genai-chat/internal/worker"
)

// App holds every explicitly constructed dependency. Nothing here is reached
// through package-level globals; the router receives the App and wires
// repositories and services from it.
type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	Schema        repository.SchemaVersion
	TurnsCache    *cache.TurnsCache
	CleanupWorker *worker.SessionCleanupWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if cfg.MySQL.AutoMigrate {
		if err := mysqlDB.AutoMigrate(&model.Keyword{}, &model.ChatSession{}, &model.Chat{}); err != nil {
			return nil, fmt.Errorf("auto migrate tables failed: %w", err)
		}
	}

	// Probed once; a schema migration needs a restart to take effect.
	schema := repository.ProbeSchema(mysqlDB)
	if !schema.SupportsSessions() {
		zapLogger.Warn("session schema absent, running in legacy mode",
			zap.Bool("sessions_table", schema.SessionsTable),
			zap.Bool("session_columns", schema.SessionColumns),
		)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	turnsCache := cache.NewTurnsCache(redisCli, time.Duration(cfg.Redis.TurnsTTLSeconds)*time.Second)

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}

	chatRepo := repository.NewChatRepository(mysqlDB, schema)
	cleanupWorker := worker.NewSessionCleanupWorker(
		mqConn,
		chatRepo,
		turnsCache,
		cfg.RabbitMQ.SessionCleanupQueue,
		zapLogger,
	)
	if err := cleanupWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start cleanup worker failed: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        zapLogger,
		MySQL:         mysqlDB,
		Redis:         redisCli,
		MQConn:        mqConn,
		Schema:        schema,
		TurnsCache:    turnsCache,
		CleanupWorker: cleanupWorker,
		StartedAt:     time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.CleanupWorker != nil {
		a.CleanupWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return closeErr
}
