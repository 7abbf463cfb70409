package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"

	"samplecatalog/src/helper/env"
	"samplecatalog/src/infra/kafka"
	"samplecatalog/src/infra/postgres"
	"samplecatalog/src/infra/redis"
	"samplecatalog/src/repositories"
	"samplecatalog/src/server"
	"samplecatalog/src/services/auth"
	"samplecatalog/src/services/events"
	"samplecatalog/src/services/samples"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting samplecatalog API server...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSampleConfig,
			newRepository,
			newPublisher,
			newCaches,
			newSampleService,
			newTokenParser,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newSampleConfig reads the core configuration once; it is immutable from
// here on.
func newSampleConfig() samples.Config {
	return samples.Config{
		CacheCapacity:  env.GetInt("CACHE_CAPACITY", 10000),
		CacheTTL:       time.Duration(env.GetInt("CACHE_TTL", 60)) * time.Second,
		DisableAuth:    env.GetBool("DISABLE_AUTH", false),
		RequiredDomain: env.GetString("REQUIRED_EMAIL_DOMAIN", "gmail.com"),
	}
}

// newRepository selects the document store backend.
func newRepository(logger *slog.Logger) (repositories.SampleRepository, error) {
	backend := env.GetString("DOCSTORE_BACKEND", "redis")
	logger.Info("Configuring document store", "backend", backend)

	switch backend {
	case "postgres":
		pool, err := postgres.NewPostgresClient(
			env.MustGetString("DB_HOST"),
			env.GetString("DB_PORT", "5432"),
			env.MustGetString("DB_NAME"),
			env.MustGetString("DB_USER"),
			env.MustGetString("DB_PASSWORD"),
			env.GetInt("DB_MAX_POOL_CONNECTIONS", 25),
		)
		if err != nil {
			return nil, err
		}
		repo := repositories.NewPostgresSampleRepository(pool)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return repo, nil

	case "memory":
		return repositories.NewMemorySampleRepository(), nil

	default:
		client, err := redis.NewRedisClient(
			env.GetString("REDIS_ADDR", "localhost:6379"),
			env.GetString("REDIS_PASSWORD", ""),
			env.GetInt("REDIS_DB", 0),
		)
		if err != nil {
			return nil, err
		}
		return repositories.NewRedisSampleRepository(client), nil
	}
}

// newPublisher wires mutation events to Kafka when brokers are configured.
func newPublisher(logger *slog.Logger) (events.Publisher, error) {
	brokers := env.GetString("KAFKA_BROKERS", "")
	if brokers == "" {
		logger.Info("Kafka brokers not configured, mutation events disabled")
		return events.NoopPublisher{}, nil
	}

	kafkaClient, err := kafka.NewKafkaClient(brokers)
	if err != nil {
		return nil, err
	}
	topic := env.GetString("KAFKA_EVENTS_TOPIC", "sample-events")
	return events.NewKafkaPublisher(logger, kafkaClient, topic), nil
}

func newCaches(logger *slog.Logger, cfg samples.Config) *samples.Caches {
	return samples.NewCaches(logger, cfg)
}

func newSampleService(
	logger *slog.Logger,
	repo repositories.SampleRepository,
	caches *samples.Caches,
	publisher events.Publisher,
	cfg samples.Config,
) *samples.Service {
	return samples.NewService(logger, repo, caches, publisher, cfg)
}

func newTokenParser() *auth.TokenParser {
	return auth.NewTokenParser([]byte(env.GetString("JWT_SIGNING_KEY", "dev-signing-key")))
}

func newServer(
	logger *slog.Logger,
	sampleService *samples.Service,
	tokenParser *auth.TokenParser,
	cfg samples.Config,
) (*server.Server, error) {
	port := env.GetInt("SERVER_PORT", 8080)
	return server.NewServer(logger, port, sampleService, tokenParser, cfg.DisableAuth, cfg.RequiredDomain)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
