package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Ids travel as prefixed opaque strings ("samples:<uuid>") so clients can
// hand them back unchanged regardless of the storage backend. They compare
// for equality only; no ordering is implied.

const (
	SampleIDPrefix   = "samples"
	EmbeddedIDPrefix = "values"
)

// NewSampleID mints an id for a top-level sample document.
func NewSampleID() string {
	return fmt.Sprintf("%s:%s", SampleIDPrefix, uuid.NewString())
}

// NewEmbeddedID mints an id for an embedded value.
func NewEmbeddedID() string {
	return fmt.Sprintf("%s:%s", EmbeddedIDPrefix, uuid.NewString())
}
