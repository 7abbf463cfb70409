package entities

import "fmt"

// EmbeddedType is the closed enumeration of embedded value kinds.
type EmbeddedType string

const (
	EmbeddedTypeOne     EmbeddedType = "ONE"
	EmbeddedTypeAnother EmbeddedType = "ANOTHER"
)

// Validate rejects values outside the enumeration.
func (t EmbeddedType) Validate() error {
	switch t {
	case EmbeddedTypeOne, EmbeddedTypeAnother:
		return nil
	}
	return fmt.Errorf("unknown embedded type %q", string(t))
}

// Embedded is a sub-entity owned exclusively by its parent sample.
type Embedded struct {
	ID           string       `json:"id"`
	Node         NodeDetails  `json:"node"`
	EmbeddedType EmbeddedType `json:"embedded_type"`
	Value        *float64     `json:"value,omitempty"`
}

// DisplayValue is the client-facing value: 0 when unset.
func (e Embedded) DisplayValue() float64 {
	if e.Value == nil {
		return 0
	}
	return *e.Value
}

// Clone returns a deep copy.
func (e Embedded) Clone() Embedded {
	out := e
	out.Value = clonePtr(e.Value)
	out.Node = e.Node.clone()
	return out
}

// NewEmbedded is the payload for batch-adding values to a sample. A missing
// ID is assigned at insert time.
type NewEmbedded struct {
	ID           *string      `json:"id,omitempty"`
	EmbeddedType EmbeddedType `json:"embedded_type"`
	Value        *float64     `json:"value,omitempty"`
}
