package samples

import (
	"context"
	"errors"
	"fmt"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
	"samplecatalog/src/services/auth"
	"samplecatalog/src/services/events"
)

// authorize runs the single authorization guard every mutation entry point
// shares. Reads never pass through here.
func (s *Service) authorize(claims *auth.Claims) error {
	if !auth.Authorize(claims, s.cfg.RequiredDomain, s.cfg.DisableAuth) {
		return domain.ErrUnauthorized
	}
	return nil
}

// CreateSample inserts a new sample and returns it re-read from the store.
// A supplied id that already exists fails with ErrDuplicateKey and leaves
// the existing document untouched.
func (s *Service) CreateSample(ctx context.Context, claims *auth.Claims, input entities.NewSample, createdByID *string) (*entities.Sample, error) {
	if err := s.authorize(claims); err != nil {
		return nil, err
	}

	id := domain.NewSampleID()
	if input.ID != nil {
		id = *input.ID
	}

	now := s.now().UTC()
	sample := entities.Sample{
		ID:             id,
		Node:           entities.Stamp(now, createdByID),
		Name:           input.Name,
		Description:    input.Description,
		AvailableDate:  input.AvailableDate,
		ExpirationDate: input.ExpirationDate,
	}

	if err := s.repo.InsertOne(ctx, sample); err != nil {
		return nil, err
	}

	// Read-after-write within this call; a concurrent delete between the
	// two store calls surfaces as ErrNotFound, not as a fault.
	created, err := s.repo.FindOneByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve object after insert: %w", err)
	}

	s.publisher.PublishSampleEvent(ctx, events.SampleEvent{
		Type:       events.SampleCreated,
		SampleID:   id,
		ActorID:    createdByID,
		OccurredAt: now,
	})
	return created, nil
}

// UpdateSample applies a partial patch. Unknown patch fields fail with
// ErrValidation before anything is written; a missing target fails with
// ErrNotFound.
func (s *Service) UpdateSample(ctx context.Context, claims *auth.Claims, id string, patch map[string]any, updatedByID *string) (*entities.Sample, error) {
	if err := s.authorize(claims); err != nil {
		return nil, err
	}
	if err := validatePatch(patch, samplePatchFields); err != nil {
		return nil, err
	}

	sample, err := s.repo.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applySamplePatch(sample, patch); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	sample.Node.Touch(now, updatedByID)

	if err := s.repo.ReplaceOne(ctx, *sample); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishSampleEvent(ctx, events.SampleEvent{
		Type:       events.SampleUpdated,
		SampleID:   id,
		ActorID:    updatedByID,
		OccurredAt: now,
	})
	return updated, nil
}

// DeleteSample removes a sample by id. Deleting an absent id is reported
// through Success=false, not as an error.
func (s *Service) DeleteSample(ctx context.Context, claims *auth.Claims, id string) (domain.DeleteResponse, error) {
	if err := s.authorize(claims); err != nil {
		return domain.DeleteResponse{}, err
	}

	deleted, err := s.repo.DeleteOneByID(ctx, id)
	if err != nil {
		return domain.DeleteResponse{}, err
	}

	if deleted {
		s.publisher.PublishSampleEvent(ctx, events.SampleEvent{
			Type:       events.SampleDeleted,
			SampleID:   id,
			OccurredAt: s.now().UTC(),
		})
	}
	return domain.DeleteResponse{ID: id, Success: deleted}, nil
}

// AddValuesToSample appends a batch of embedded values to the parent.
// Items without ids get freshly generated ones. The batch lands atomically
// from the caller's perspective; the parent is returned re-read after the
// write.
func (s *Service) AddValuesToSample(ctx context.Context, claims *auth.Claims, sampleID string, newValues []entities.NewEmbedded, createdByID *string) (*entities.Sample, error) {
	if err := s.authorize(claims); err != nil {
		return nil, err
	}
	for _, nv := range newValues {
		if err := nv.EmbeddedType.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	sample, err := s.repo.FindOneByID(ctx, sampleID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	for _, nv := range newValues {
		id := domain.NewEmbeddedID()
		if nv.ID != nil {
			id = *nv.ID
		}
		sample.Values = append(sample.Values, entities.Embedded{
			ID:           id,
			Node:         entities.Stamp(now, createdByID),
			EmbeddedType: nv.EmbeddedType,
			Value:        nv.Value,
		})
	}
	sample.Node.Touch(now, createdByID)

	if err := s.repo.ReplaceOne(ctx, *sample); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindOneByID(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve object after insert: %w", err)
	}

	s.publisher.PublishSampleEvent(ctx, events.SampleEvent{
		Type:       events.SampleValuesAdded,
		SampleID:   sampleID,
		ActorID:    createdByID,
		OccurredAt: now,
	})
	return updated, nil
}

// UpdateValueForSample patches one embedded value, addressed by
// (parent id, embedded id). Same partial-patch rules as UpdateSample;
// a missing parent or embedded id fails with ErrNotFound.
func (s *Service) UpdateValueForSample(ctx context.Context, claims *auth.Claims, sampleID string, embeddedID string, patch map[string]any, updatedByID *string) (*entities.Sample, error) {
	if err := s.authorize(claims); err != nil {
		return nil, err
	}
	if err := validatePatch(patch, embeddedPatchFields); err != nil {
		return nil, err
	}

	sample, err := s.repo.FindOneByID(ctx, sampleID)
	if err != nil {
		return nil, err
	}

	value := sample.ValueByID(embeddedID)
	if value == nil {
		return nil, fmt.Errorf("%w: embedded %s", domain.ErrNotFound, embeddedID)
	}

	if err := applyEmbeddedPatch(value, patch); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	value.Node.Touch(now, updatedByID)
	sample.Node.Touch(now, updatedByID)

	if err := s.repo.ReplaceOne(ctx, *sample); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindOneByID(ctx, sampleID)
	if err != nil {
		return nil, err
	}

	s.publisher.PublishSampleEvent(ctx, events.SampleEvent{
		Type:       events.SampleValueUpdated,
		SampleID:   sampleID,
		EmbeddedID: &embeddedID,
		ActorID:    updatedByID,
		OccurredAt: now,
	})
	return updated, nil
}

// RemoveValueFromSample deletes exactly one embedded value from the named
// parent. An absent parent or embedded id is Success=false, mirroring the
// top-level delete.
func (s *Service) RemoveValueFromSample(ctx context.Context, claims *auth.Claims, sampleID string, embeddedID string) (domain.DeleteResponse, error) {
	if err := s.authorize(claims); err != nil {
		return domain.DeleteResponse{}, err
	}

	sample, err := s.repo.FindOneByID(ctx, sampleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DeleteResponse{ID: embeddedID, Success: false}, nil
		}
		return domain.DeleteResponse{}, err
	}

	if !sample.RemoveValueByID(embeddedID) {
		return domain.DeleteResponse{ID: embeddedID, Success: false}, nil
	}

	now := s.now().UTC()
	sample.Node.Touch(now, nil)

	if err := s.repo.ReplaceOne(ctx, *sample); err != nil {
		return domain.DeleteResponse{}, err
	}

	s.publisher.PublishSampleEvent(ctx, events.SampleEvent{
		Type:       events.SampleValueRemoved,
		SampleID:   sampleID,
		EmbeddedID: &embeddedID,
		OccurredAt: now,
	})
	return domain.DeleteResponse{ID: embeddedID, Success: true}, nil
}
