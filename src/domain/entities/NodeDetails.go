package entities

import "time"

// NodeDetails carries the audit metadata attached to every top-level and
// embedded entity. DateCreated is set once at creation; DateModified moves
// forward on every mutation. Actor ids are only ever caller-supplied.
type NodeDetails struct {
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	CreatedByID  *string   `json:"created_by_id,omitempty"`
	UpdatedByID  *string   `json:"updated_by_id,omitempty"`
}

// Stamp initializes the audit metadata for a freshly created entity.
func Stamp(now time.Time, createdByID *string) NodeDetails {
	return NodeDetails{
		DateCreated:  now,
		DateModified: now,
		CreatedByID:  createdByID,
	}
}

// Touch records a mutation on an existing entity.
func (n *NodeDetails) Touch(now time.Time, updatedByID *string) {
	n.DateModified = now
	if updatedByID != nil {
		n.UpdatedByID = updatedByID
	}
}
