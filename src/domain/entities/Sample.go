package entities

import "time"

// Sample is the top-level document of the catalog. Availability and
// expiration are unix timestamps; both are optional. The embedded values
// live only inside their parent sample.
type Sample struct {
	ID             string      `json:"id"`
	Node           NodeDetails `json:"node"`
	Name           string      `json:"name"`
	Description    *string     `json:"description,omitempty"`
	AvailableDate  *int64      `json:"available_date,omitempty"`
	ExpirationDate *int64      `json:"expiration_date,omitempty"`
	Values         []Embedded  `json:"values,omitempty"`
}

// NewSample is the payload for creating a sample. A missing ID means the
// store assigns one.
type NewSample struct {
	ID             *string `json:"id,omitempty"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	AvailableDate  *int64  `json:"available_date,omitempty"`
	ExpirationDate *int64  `json:"expiration_date,omitempty"`
}

// DisplayAvailableDate is what clients see as the availability date: the
// stored timestamp when present, the creation date otherwise.
func (s Sample) DisplayAvailableDate() time.Time {
	if s.AvailableDate != nil {
		return time.Unix(*s.AvailableDate, 0).UTC()
	}
	return s.Node.DateCreated
}

// DisplayExpirationDate returns nil when the sample never expires.
func (s Sample) DisplayExpirationDate() *time.Time {
	if s.ExpirationDate == nil {
		return nil
	}
	t := time.Unix(*s.ExpirationDate, 0).UTC()
	return &t
}

// MinValue returns the smallest non-zero embedded value, or 0 when the
// sample has no usable values.
func (s Sample) MinValue() float64 {
	acc := 0.
	for _, v := range s.Values {
		value := 0.
		if v.Value != nil {
			value = *v.Value
		}
		if acc == 0 {
			acc = value
		} else if value < acc && value != 0 {
			acc = value
		}
	}
	return acc
}

// ValueByID returns a pointer into Values for in-place mutation.
func (s *Sample) ValueByID(embeddedID string) *Embedded {
	for i := range s.Values {
		if s.Values[i].ID == embeddedID {
			return &s.Values[i]
		}
	}
	return nil
}

// RemoveValueByID drops exactly one embedded item, reporting whether it
// was present.
func (s *Sample) RemoveValueByID(embeddedID string) bool {
	for i := range s.Values {
		if s.Values[i].ID == embeddedID {
			s.Values = append(s.Values[:i], s.Values[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy so repository callers can never alias stored
// documents.
func (s Sample) Clone() Sample {
	out := s
	out.Description = clonePtr(s.Description)
	out.AvailableDate = clonePtr(s.AvailableDate)
	out.ExpirationDate = clonePtr(s.ExpirationDate)
	out.Node = s.Node.clone()
	if s.Values != nil {
		out.Values = make([]Embedded, len(s.Values))
		for i, v := range s.Values {
			out.Values[i] = v.Clone()
		}
	}
	return out
}

func (n NodeDetails) clone() NodeDetails {
	out := n
	out.CreatedByID = clonePtr(n.CreatedByID)
	out.UpdatedByID = clonePtr(n.UpdatedByID)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
