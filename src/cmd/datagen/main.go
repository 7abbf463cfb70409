package main

import (
	"context"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
	"samplecatalog/src/helper/env"
	"samplecatalog/src/infra/postgres"
	"samplecatalog/src/infra/redis"
	"samplecatalog/src/repositories"
)

// Seeds the configured backend with fake sample documents, for local
// development and load poking.
func main() {
	count := env.GetInt("DATAGEN_COUNT", 500)
	ctx := context.Background()

	repo, err := buildRepository()
	if err != nil {
		log.Fatalf("Failed to connect document store: %v", err)
	}

	now := time.Now().UTC()
	inserted := 0
	for i := 0; i < count; i++ {
		sample := fakeSample(now)
		if err := repo.InsertOne(ctx, sample); err != nil {
			log.Printf("Failed to insert sample %s: %v", sample.ID, err)
			continue
		}
		inserted++
	}

	log.Printf("Seeded %d/%d samples", inserted, count)
}

func buildRepository() (repositories.SampleRepository, error) {
	switch env.GetString("DOCSTORE_BACKEND", "redis") {
	case "postgres":
		pool, err := postgres.NewPostgresClient(
			env.MustGetString("DB_HOST"),
			env.GetString("DB_PORT", "5432"),
			env.MustGetString("DB_NAME"),
			env.MustGetString("DB_USER"),
			env.MustGetString("DB_PASSWORD"),
			env.GetInt("DB_MAX_POOL_CONNECTIONS", 10),
		)
		if err != nil {
			return nil, err
		}
		repo := repositories.NewPostgresSampleRepository(pool)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return repo, nil
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

func fakeSample(now time.Time) entities.Sample {
	// spread creation over the last year so pagination has something to sort
	created := now.Add(-time.Duration(gofakeit.Number(0, 365*24)) * time.Hour)
	description := gofakeit.Sentence(8)

	sample := entities.Sample{
		ID:          domain.NewSampleID(),
		Node:        entities.Stamp(created, nil),
		Name:        gofakeit.ProductName(),
		Description: &description,
	}

	if gofakeit.Bool() {
		available := created.Unix()
		sample.AvailableDate = &available
	}
	if gofakeit.Bool() {
		expiration := created.Add(time.Duration(gofakeit.Number(1, 180)) * 24 * time.Hour).Unix()
		sample.ExpirationDate = &expiration
	}

	valueCount := gofakeit.Number(0, 4)
	for i := 0; i < valueCount; i++ {
		embeddedType := entities.EmbeddedTypeOne
		if gofakeit.Bool() {
			embeddedType = entities.EmbeddedTypeAnother
		}
		value := gofakeit.Float64Range(0.1, 1000)
		sample.Values = append(sample.Values, entities.Embedded{
			ID:           domain.NewEmbeddedID(),
			Node:         entities.Stamp(created, nil),
			EmbeddedType: embeddedType,
			Value:        &value,
		})
	}

	return sample
}
