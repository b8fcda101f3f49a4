package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cvboost/internal/config"
	"cvboost/internal/model"
	mysqlClient "cvboost/internal/platform/mysql"
	rabbitmqClient "cvboost/internal/platform/rabbitmq"
	redisClient "cvboost/internal/platform/redis"
	"cvboost/internal/repository"
	"cvboost/internal/worker"
	"cvboost/internal/workflow"
)

type App struct {
	Config              *config.Config
	MySQL               *gorm.DB
	Redis               *redis.Client
	MQConn              *amqp.Connection
	Workflow            *workflow.Client
	SubmissionPublisher *rabbitmqClient.SubmissionPublisher
	DispatchWorker      *worker.DispatchWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Message{},
		&model.ContactSubmission{},
		&model.ConsultationRequest{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	workflowClient := workflow.NewClient(
		cfg.Workflow.BaseURL,
		time.Duration(cfg.Workflow.TimeoutSeconds)*time.Second,
	)

	submissionPublisher := rabbitmqClient.NewSubmissionPublisher(mqConn, cfg.RabbitMQ.DispatchQueue)

	contactRepo := repository.NewContactRepository(mysqlDB)
	consultationRepo := repository.NewConsultationRepository(mysqlDB)
	dispatchWorker := worker.NewDispatchWorker(
		mqConn,
		workflowClient,
		contactRepo,
		consultationRepo,
		cfg.RabbitMQ.DispatchQueue,
	)
	if err := dispatchWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start dispatch worker failed: %w", err)
	}

	return &App{
		Config:              cfg,
		MySQL:               mysqlDB,
		Redis:               redisCli,
		MQConn:              mqConn,
		Workflow:            workflowClient,
		SubmissionPublisher: submissionPublisher,
		DispatchWorker:      dispatchWorker,
		StartedAt:           time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DispatchWorker != nil {
		a.DispatchWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
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
	return closeErr
}
