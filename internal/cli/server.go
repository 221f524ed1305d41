package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"quizhub/internal/app"
	"quizhub/internal/config"
	"quizhub/internal/domain"
	"quizhub/internal/infra/memory"
	"quizhub/internal/infra/postgres"
	redcache "quizhub/internal/infra/redis"
	transport "quizhub/internal/transport/http"
)

// contentStore is the cache seen by both services: reads for the quiz
// service, invalidation for the admin service.
type contentStore interface {
	app.QuizContentSource
	app.ContentInvalidator
}

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)

	var (
		questionRepo app.QuestionRepository
		quizRepo     app.QuizRepository
		attemptRepo  app.AttemptRepository
		loader       memory.Loader
	)

	if cfg.Postgres.URL != "" {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		questionRepo = postgres.NewQuestionRepository(db)
		quizRepo = postgres.NewQuizRepository(db)
		attemptRepo = postgres.NewAttemptRepository(db)
		loader = postgres.NewContentLoader(pool)
	} else {
		log.Printf("no postgres configured, using in-memory stores with sample data")
		questions := memory.NewQuestionRepository()
		quizzes := memory.NewQuizRepository()
		seedSampleData(ctx, questions, quizzes)
		questionRepo = questions
		quizRepo = quizzes
		attemptRepo = memory.NewAttemptRepository()
		loader = memory.NewStoreLoader(quizzes, questions)
	}

	var content contentStore
	if redisClient != nil {
		content = redcache.NewContentCache(redisClient, loader, cacheTTL)
	} else {
		content = memory.NewContentCache(loader, cacheTTL)
	}

	feed := app.NewAttemptFeed()
	quizService := app.NewQuizService(quizRepo, attemptRepo, content, feed)
	adminService := app.NewAdminService(questionRepo, quizRepo, attemptRepo, content)
	handler := transport.NewHandler(quizService, adminService, feed)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizhub on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedSampleData loads a small demo quiz so the no-database mode serves
// something out of the box.
func seedSampleData(ctx context.Context, questions *memory.QuestionRepository, quizzes *memory.QuizRepository) {
	now := time.Now()
	demo := []domain.Question{
		{
			Text:          "What is 2 + 2?",
			Options:       []string{"3", "4", "5", "22"},
			CorrectOption: 1,
			Category:      "Math",
		},
		{
			Text:          "Which planet is closest to the sun?",
			Options:       []string{"Venus", "Earth", "Mercury", "Mars"},
			CorrectOption: 2,
			Category:      "Science",
			Explanation:   "Mercury orbits at roughly 58 million km.",
		},
		{
			Text:          "What does HTTP stand for?",
			Options:       []string{"HyperText Transfer Protocol", "High Throughput Text Protocol", "Host Transfer Text Protocol", "HyperText Tunnel Protocol"},
			CorrectOption: 0,
			Category:      "Tech",
		},
	}

	ids := make([]string, 0, len(demo))
	for _, q := range demo {
		q.ID = uuid.NewString()
		q.Difficulty = domain.DifficultyMedium
		q.CreatedAt = now
		q.UpdatedAt = now
		if err := questions.Create(ctx, &q); err != nil {
			log.Printf("seed question: %v", err)
			continue
		}
		ids = append(ids, q.ID)
	}

	quiz := domain.Quiz{
		ID:               uuid.NewString(),
		Title:            "General Knowledge Warmup",
		Description:      "A short mixed quiz to try the platform.",
		QuestionIDs:      ids,
		TimeLimitMinutes: 5,
		Category:         "General",
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := quizzes.Create(ctx, &quiz); err != nil {
		log.Printf("seed quiz: %v", err)
	}
}
