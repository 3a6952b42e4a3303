// Package marketplace собирает основное приложение: хранилище, кеш,
// очередь уведомлений, сервисы и HTTP-сервер.
package marketplace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vip-marketplace/internal/cache"
	"github.com/magabrotheeeer/vip-marketplace/internal/config"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/vip-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/vip-marketplace/internal/migrations"
	"github.com/magabrotheeeer/vip-marketplace/internal/plans"
	authservice "github.com/magabrotheeeer/vip-marketplace/internal/services/auth"
	datalayerservice "github.com/magabrotheeeer/vip-marketplace/internal/services/datalayer"
	vipservice "github.com/magabrotheeeer/vip-marketplace/internal/services/vip"
	"github.com/magabrotheeeer/vip-marketplace/internal/storage/repository"
)

// App инкапсулирует зависимости основного приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение: подключает зависимости, применяет миграции
// и настраивает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	var dataCache cache.Cache
	if cfg.RedisConnection.Enabled {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		dataCache = redisCache
	} else {
		dataCache = cache.NewMemory()
	}

	conn, ch, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.New(db, jwtMaker)
	vipService := vipservice.New(db, plans.MustDefault(), cfg.VIPDiscount, logger)
	dataService := datalayerservice.New(db, dataCache, rabbitmq.NewSMSPublisher(ch), logger,
		cfg.DataCache.TTL, cfg.DataCache.FetchTimeout)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, vipService, dataService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.ch.Close()
		_ = a.conn.Close()
		_ = a.db.DB.Close()
		return err
	}
}
