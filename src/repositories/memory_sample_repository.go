package repositories

import (
	"context"
	"sync"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

// MemorySampleRepository is a mutex-guarded in-process backend. It serves
// local development and the test suites; documents are deep-copied at the
// boundary so callers never alias stored state.
type MemorySampleRepository struct {
	mu      sync.RWMutex
	samples map[string]entities.Sample
}

func NewMemorySampleRepository() *MemorySampleRepository {
	return &MemorySampleRepository{samples: make(map[string]entities.Sample)}
}

func (r *MemorySampleRepository) FindAll(_ context.Context, filter domain.SampleFilter) ([]entities.Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	samples := make([]entities.Sample, 0, len(r.samples))
	for _, sample := range r.samples {
		if filter.Matches(sample) {
			samples = append(samples, sample.Clone())
		}
	}
	return samples, nil
}

func (r *MemorySampleRepository) FindOneByID(_ context.Context, id string) (*entities.Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sample, ok := r.samples[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := sample.Clone()
	return &clone, nil
}

func (r *MemorySampleRepository) InsertOne(_ context.Context, sample entities.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.samples[sample.ID]; exists {
		return domain.ErrDuplicateKey
	}
	r.samples[sample.ID] = sample.Clone()
	return nil
}

func (r *MemorySampleRepository) ReplaceOne(_ context.Context, sample entities.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.samples[sample.ID]; !exists {
		return domain.ErrNotFound
	}
	r.samples[sample.ID] = sample.Clone()
	return nil
}

func (r *MemorySampleRepository) DeleteOneByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.samples[id]; !exists {
		return false, nil
	}
	delete(r.samples, id)
	return true, nil
}
