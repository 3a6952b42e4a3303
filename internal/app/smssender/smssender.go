// Package smssender собирает сервис отправки SMS-подтверждений:
// хранилище, очередь уведомлений, шлюз и потребитель сообщений.
package smssender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vip-marketplace/internal/config"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/sms"
	smsservice "github.com/magabrotheeeer/vip-marketplace/internal/services/smssender"
	"github.com/magabrotheeeer/vip-marketplace/internal/storage/repository"
)

// App инкапсулирует зависимости сервиса отправки SMS.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	db      *repository.Storage
	service *smsservice.Service
	logger  *slog.Logger
}

// New создает приложение отправки SMS-подтверждений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	conn, ch, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	gateway := sms.NewGateway(cfg.SMSGateway)
	service := smsservice.New(gateway, db, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		db:      db,
		service: service,
		logger:  logger,
	}, nil
}

// Run запускает потребителя очереди и завершает работу по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.SMSQueueName, a.service.HandleSMSJob)
	if err != nil {
		a.logger.Error("failed to start sms queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sms sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	_ = a.db.DB.Close()

	return nil
}
