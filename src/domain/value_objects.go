package domain

import (
	"errors"
	"strings"

	"samplecatalog/src/domain/entities"
)

var (
	// ErrNotFound indicates a lookup by id yielded nothing.
	ErrNotFound = errors.New("sample not found")

	// ErrValidation indicates an unknown or invalid patch field; nothing was written.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized indicates the mutation's claims were missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateKey indicates a create with an id that already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// Status is the time-derived classification of a sample, computed at query
// time against a caller-supplied "now". It is never stored.
type Status string

const (
	StatusAll       Status = "ALL"
	StatusAvailable Status = "AVAILABLE"
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusPending   Status = "PENDING"
)

// SampleFilter is the store-independent predicate over samples. Zero value
// means "no filter". Range fields compare against the stored unix
// timestamps; a range test on an absent timestamp matches nothing, same as
// a range query against a missing document field.
type SampleFilter struct {
	Names            []string
	SearchTerm       string
	SearchFields     []string
	AvailableBefore  *int64
	AvailableAfter   *int64
	ExpirationBefore *int64
	ExpirationAfter  *int64
}

// Matches reports whether the sample satisfies every clause of the filter.
func (f SampleFilter) Matches(s entities.Sample) bool {
	if len(f.Names) > 0 {
		found := false
		for _, name := range f.Names {
			if s.Name == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.SearchTerm != "" && !f.matchesSearch(s) {
		return false
	}

	if f.AvailableBefore != nil && (s.AvailableDate == nil || *s.AvailableDate >= *f.AvailableBefore) {
		return false
	}
	if f.AvailableAfter != nil && (s.AvailableDate == nil || *s.AvailableDate <= *f.AvailableAfter) {
		return false
	}
	if f.ExpirationBefore != nil && (s.ExpirationDate == nil || *s.ExpirationDate >= *f.ExpirationBefore) {
		return false
	}
	if f.ExpirationAfter != nil && (s.ExpirationDate == nil || *s.ExpirationDate <= *f.ExpirationAfter) {
		return false
	}

	return true
}

func (f SampleFilter) matchesSearch(s entities.Sample) bool {
	term := strings.ToLower(f.SearchTerm)
	fields := f.SearchFields
	if len(fields) == 0 {
		fields = []string{"name", "description"}
	}
	for _, field := range fields {
		switch field {
		case "name":
			if strings.Contains(strings.ToLower(s.Name), term) {
				return true
			}
		case "description":
			if s.Description != nil && strings.Contains(strings.ToLower(*s.Description), term) {
				return true
			}
		}
	}
	return false
}
