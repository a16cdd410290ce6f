package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"zentrafuge/internal/buddy"
	"zentrafuge/internal/chat"
	"zentrafuge/internal/config"
	"zentrafuge/internal/db"
	"zentrafuge/internal/handlers"
	"zentrafuge/internal/llm"
	mw "zentrafuge/internal/middleware"
	"zentrafuge/internal/prompts"
	"zentrafuge/internal/store"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set; chat turns will fail")
	}

	dbConn, err := sqlx.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		logger.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	st := store.New(dbConn)
	generator := llm.NewClient(llm.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	chatSvc := chat.NewService(st, st, generator, logger)
	buddySvc := buddy.NewService(st, st, rng, logger)
	promptSvc := prompts.NewService(rng)

	exposeErrors := cfg.IsDevelopment()
	chatHandler := handlers.NewChatHandler(chatSvc, st, logger, exposeErrors)
	userHandler := handlers.NewUserHandler(st, logger, exposeErrors)
	growthHandler := handlers.NewGrowthHandler(st, logger, exposeErrors)
	promptHandler := handlers.NewPromptHandler(promptSvc, logger, exposeErrors)
	buddyHandler := handlers.NewBuddyHandler(buddySvc, logger, exposeErrors)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Route("/chat", func(c chi.Router) {
			c.Post("/send", chatHandler.Send)
			c.Get("/history/{userID}", chatHandler.History)
			c.Delete("/history/{userID}", chatHandler.Clear)
		})
		api.Route("/users", func(u chi.Router) {
			u.Post("/register", userHandler.Register)
			u.Get("/profile/{userID}", userHandler.GetProfile)
			u.Put("/profile/{userID}", userHandler.UpdateProfile)
		})
		api.Route("/growth", func(g chi.Router) {
			g.Get("/status/{userID}", growthHandler.GetStatus)
			g.Put("/status/{userID}", growthHandler.UpdateStatus)
			g.Get("/levelup/{userID}", growthHandler.CheckLevelUp)
		})
		api.Route("/prompts", func(p chi.Router) {
			p.Get("/daily", promptHandler.Daily)
			p.Get("/all", promptHandler.All)
			p.Post("/add", promptHandler.Add)
		})
		api.Route("/buddy", func(b chi.Router) {
			b.Post("/send", buddyHandler.Send)
			b.Get("/random/{userID}", buddyHandler.Random)
			b.Get("/all/{userID}", buddyHandler.All)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"zentrafuge backend is running"}`))
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}
