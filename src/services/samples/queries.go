package samples

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
	"samplecatalog/src/services/cache"
	"samplecatalog/src/services/pagination"
)

// AllSamples returns a page over the whole collection. Cached per argument
// tuple.
func (s *Service) AllSamples(ctx context.Context, page pagination.PageArgs) (domain.SampleConnection, error) {
	key := cache.Key("all_samples", pageKeyParts(page)...)
	return s.caches.AllSamples.GetOrCompute(key, func() (domain.SampleConnection, error) {
		s.logger.Debug("building all samples")
		return s.findConnection(ctx, domain.SampleFilter{}, page)
	})
}

// SearchSamples returns a page of samples whose named fields contain the
// search term. Cached per argument tuple.
func (s *Service) SearchSamples(ctx context.Context, searchTerm string, fields []string, page pagination.PageArgs) (domain.SampleConnection, error) {
	parts := append([]string{strconv.Quote(searchTerm), keyStrings(fields)}, pageKeyParts(page)...)
	key := cache.Key("search_samples", parts...)
	return s.caches.SearchSamples.GetOrCompute(key, func() (domain.SampleConnection, error) {
		filter := domain.SampleFilter{SearchTerm: searchTerm, SearchFields: fields}
		return s.findConnection(ctx, filter, page)
	})
}

// SamplesByStatus returns a page of samples in the given status window,
// evaluated against the service clock at compute time. Cached per argument
// tuple; a stale entry keeps serving the window it was computed for until
// the TTL lapses.
func (s *Service) SamplesByStatus(ctx context.Context, status *domain.Status, page pagination.PageArgs) (domain.SampleConnection, error) {
	parts := append([]string{keyStatus(status)}, pageKeyParts(page)...)
	key := cache.Key("samples_by_status", parts...)
	return s.caches.SamplesByStatus.GetOrCompute(key, func() (domain.SampleConnection, error) {
		filter := BuildStatusFilter(status, s.now().Unix())
		return s.findConnection(ctx, filter, page)
	})
}

// SampleByID fetches one sample. Never cached: identifier-keyed reads
// always hit the store.
func (s *Service) SampleByID(ctx context.Context, id string) (*entities.Sample, error) {
	return s.repo.FindOneByID(ctx, id)
}

// SamplesByNames returns every sample whose name is in names, optionally
// narrowed by status. No pagination: the connection carries the full match.
// Cached per argument tuple.
func (s *Service) SamplesByNames(ctx context.Context, names []string, status *domain.Status) (domain.SampleConnection, error) {
	key := cache.Key("samples_by_names", keyStrings(names), keyStatus(status))
	return s.caches.SamplesByNames.GetOrCompute(key, func() (domain.SampleConnection, error) {
		filter := BuildStatusFilter(status, s.now().Unix())
		filter.Names = names

		items, err := s.repo.FindAll(ctx, filter)
		if err != nil {
			return domain.SampleConnection{}, fmt.Errorf("store query failed: %w", err)
		}
		all := len(items)
		return pagination.Paginate(items, pagination.PageArgs{Limit: &all})
	})
}

func (s *Service) findConnection(ctx context.Context, filter domain.SampleFilter, page pagination.PageArgs) (domain.SampleConnection, error) {
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return domain.SampleConnection{}, fmt.Errorf("store query failed: %w", err)
	}
	return pagination.Paginate(items, page)
}

// Cache keys serialize the full argument tuple, explicit absence included,
// so equal argument sets always collide and unequal ones never share an
// entry by accident. Caller-supplied strings are quoted so no value can
// smuggle a separator and alias another tuple.

func pageKeyParts(page pagination.PageArgs) []string {
	return []string{
		keyInt(page.Limit),
		keyString(page.After),
		keyString(page.Before),
		keyInt(page.Skip),
	}
}

func keyInt(v *int) string {
	if v == nil {
		return "nil"
	}
	return strconv.Itoa(*v)
}

func keyString(v *string) string {
	if v == nil {
		return "nil"
	}
	return strconv.Quote(*v)
}

func keyStatus(v *domain.Status) string {
	if v == nil {
		return "nil"
	}
	return string(*v)
}

func keyStrings(v []string) string {
	quoted := make([]string, len(v))
	for i, s := range v {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}
