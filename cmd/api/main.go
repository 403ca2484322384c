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
	"github.com/joho/godotenv"

	"github.com/taskforge/taskforge-go/internal/config"
	"github.com/taskforge/taskforge-go/internal/crypto"
	"github.com/taskforge/taskforge-go/internal/handler"
	"github.com/taskforge/taskforge-go/internal/middleware"
	"github.com/taskforge/taskforge-go/internal/repository"
	"github.com/taskforge/taskforge-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	codec, err := crypto.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL, nil)
	if err != nil {
		slog.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := service.NewAuthService(userRepo, codec)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/users/{user_id}", userHandler.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/auth/token", authHandler.HandleToken)
		r.Post("/users", userHandler.HandleRegister)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(codec, userRepo))
		r.Post("/auth/refresh_token", authHandler.HandleRefresh)

		r.Get("/users", userHandler.HandleList)
		r.Put("/users/{user_id}", userHandler.HandleUpdate)
		r.Delete("/users/{user_id}", userHandler.HandleDelete)

		r.Post("/tasks", taskHandler.HandleCreate)
		r.Get("/tasks", taskHandler.HandleList)
		r.Patch("/tasks/{task_id}", taskHandler.HandleUpdate)
		r.Delete("/tasks/{task_id}", taskHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
