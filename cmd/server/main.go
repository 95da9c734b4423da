package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/app"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/app/handlers"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/config"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/logger"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/logger/handlers/urllog"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/metrics"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/security"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/service"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
)

func main() {
	// carga de configuración
	cfg := config.MustLoad()

	// inicialización del logger según el entorno
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	metrics.Init()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(metrics.HTTPMetrics)

	// capas de acceso a datos
	userRepo := storage.NewUserRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	contentRepo := storage.NewContentRepository(application.DB)

	authService := service.NewAuthService(log, userRepo, cfg.JWT.TokenTTL(), cfg.JWT.Secret, cfg.Auth.BcryptCost)
	userService := service.NewUserService(log, userRepo)
	productService := service.NewProductService(log, productRepo)
	orderService := service.NewOrderService(log, application.DB, productRepo, orderRepo)
	contentService := service.NewContentService(log, contentRepo)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		// rutas públicas
		r.Post("/auth/register", handlers.RegisterHandler(log, authService))
		r.Post("/auth/login", handlers.LoginHandler(log, authService))
		r.Get("/products", handlers.ListProductsHandler(log, productService))
		r.Get("/products/{id}", handlers.GetProductHandler(log, productService))
		r.Get("/products/category/{category}", handlers.CategoryGalleryHandler(log, productService))
		r.Get("/content", handlers.ListContentHandler(log, contentService))
		r.Get("/content/{sectionName}", handlers.GetSectionHandler(log, contentService))

		// rutas autenticadas
		r.Group(func(r chi.Router) {
			r.Use(security.Middleware(log, cfg.JWT.Secret, userRepo))

			r.Get("/auth/profile", handlers.ProfileHandler(log, authService))
			r.Put("/auth/profile", handlers.UpdateProfileHandler(log, authService))
			r.Post("/orders", handlers.CreateOrderHandler(log, orderService))
			r.Get("/orders/myorders", handlers.MyOrdersHandler(log, orderService))
			r.Get("/orders/{id}", handlers.GetOrderHandler(log, orderService))

			// rutas de administración
			r.Group(func(r chi.Router) {
				r.Use(security.RequireAdmin)

				r.Get("/auth/users", handlers.ListUsersHandler(log, userService))
				r.Delete("/auth/users/{id}", handlers.DeleteUserHandler(log, userService))
				r.Post("/products", handlers.CreateProductHandler(log, productService))
				r.Put("/products/{id}", handlers.UpdateProductHandler(log, productService))
				r.Delete("/products/{id}", handlers.DeleteProductHandler(log, productService))
				r.Get("/orders", handlers.ListOrdersHandler(log, orderService))
				r.Put("/orders/{id}", handlers.UpdateOrderStatusHandler(log, orderService))
				r.Delete("/orders/{id}", handlers.DeleteOrderHandler(log, orderService))
				r.Post("/content", handlers.CreateContentHandler(log, contentService))
				r.Put("/content/{id}", handlers.UpdateContentHandler(log, contentService))
				r.Delete("/content/{id}", handlers.DeleteContentHandler(log, contentService))
			})
		})
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
