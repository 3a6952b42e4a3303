// Package marketplace предоставляет маршруты основного приложения.
package marketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/auth/register"
	formlist "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/form/list"
	formsubmit "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/form/submit"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/health"
	paymentcreate "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/payment/create"
	paymentlist "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/payment/list"
	planlist "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/plan/list"
	pricingquote "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/pricing/quote"
	restaurantlist "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/restaurant/list"
	restaurantread "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/restaurant/read"
	reviewadd "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/review/add"
	reviewlist "github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/review/list"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/handlers/subscription/subscribe"
	"github.com/magabrotheeeer/vip-marketplace/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/vip-marketplace/internal/services/auth"
	datalayerservice "github.com/magabrotheeeer/vip-marketplace/internal/services/datalayer"
	vipservice "github.com/magabrotheeeer/vip-marketplace/internal/services/vip"
	"github.com/magabrotheeeer/vip-marketplace/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.Service, vipService *vipservice.Service, dataService *datalayerservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/subscriptions/plans", planlist.New(logger, vipService).ServeHTTP)
		r.Get("/pricing/quote", pricingquote.New(logger, vipService).ServeHTTP)
		r.Get("/restaurants", restaurantlist.New(logger, dataService).ServeHTTP)
		r.Get("/restaurants/{id}", restaurantread.New(logger, dataService).ServeHTTP)
		r.Get("/restaurants/{id}/reviews", reviewlist.New(logger, dataService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/subscriptions/subscribe", subscribe.New(logger, vipService).ServeHTTP)
			r.Post("/subscriptions/cancel", cancel.New(logger, vipService).ServeHTTP)
			r.Get("/subscriptions/current", status.New(logger, vipService).ServeHTTP)
			r.Post("/restaurants/{id}/reviews", reviewadd.New(logger, dataService).ServeHTTP)
			r.Post("/forms", formsubmit.New(logger, dataService).ServeHTTP)
			r.Get("/forms", formlist.New(logger, dataService).ServeHTTP)
			r.Post("/payments", paymentcreate.New(logger, dataService).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, dataService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
