package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

const (
	sampleKeyPrefix = "sample:"
	sampleIndexKey  = "samples"
)

// RedisSampleRepository stores one JSON document per sample under
// "sample:<id>" plus a set index of known ids for scans.
type RedisSampleRepository struct {
	client *redis.Client
}

func NewRedisSampleRepository(client *redis.Client) *RedisSampleRepository {
	return &RedisSampleRepository{client: client}
}

func (r *RedisSampleRepository) FindAll(ctx context.Context, filter domain.SampleFilter) ([]entities.Sample, error) {
	ids, err := r.client.SMembers(ctx, sampleIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sample index: %w", err)
	}
	if len(ids) == 0 {
		return []entities.Sample{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, sampleKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to load sample documents: %w", err)
	}

	samples := make([]entities.Sample, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// index entry without a document, e.g. raced with a delete
				continue
			}
			return nil, fmt.Errorf("failed to load sample document: %w", err)
		}
		var sample entities.Sample
		if err := json.Unmarshal([]byte(data), &sample); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sample document: %w", err)
		}
		if filter.Matches(sample) {
			samples = append(samples, sample)
		}
	}
	return samples, nil
}

func (r *RedisSampleRepository) FindOneByID(ctx context.Context, id string) (*entities.Sample, error) {
	data, err := r.client.Get(ctx, sampleKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sample %s: %w", id, err)
	}
	var sample entities.Sample
	if err := json.Unmarshal([]byte(data), &sample); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sample %s: %w", id, err)
	}
	return &sample, nil
}

func (r *RedisSampleRepository) InsertOne(ctx context.Context, sample entities.Sample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	created, err := r.client.SetNX(ctx, sampleKeyPrefix+sample.ID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to insert sample %s: %w", sample.ID, err)
	}
	if !created {
		return domain.ErrDuplicateKey
	}

	if err := r.client.SAdd(ctx, sampleIndexKey, sample.ID).Err(); err != nil {
		return fmt.Errorf("failed to index sample %s: %w", sample.ID, err)
	}
	return nil
}

func (r *RedisSampleRepository) ReplaceOne(ctx context.Context, sample entities.Sample) error {
	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	replaced, err := r.client.SetXX(ctx, sampleKeyPrefix+sample.ID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to replace sample %s: %w", sample.ID, err)
	}
	if !replaced {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RedisSampleRepository) DeleteOneByID(ctx context.Context, id string) (bool, error) {
	pipe := r.client.Pipeline()
	delCmd := pipe.Del(ctx, sampleKeyPrefix+id)
	pipe.SRem(ctx, sampleIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to delete sample %s: %w", id, err)
	}
	return delCmd.Val() > 0, nil
}
