package domain

import "samplecatalog/src/domain/entities"

// PageInfo describes the position of a page inside the full ordered result
// set. NextCursor is the cursor to pass as `after` for the following page.
type PageInfo struct {
	HasNextPage     bool    `json:"has_next_page"`
	HasPreviousPage bool    `json:"has_previous_page"`
	StartCursor     *string `json:"start_cursor,omitempty"`
	NextCursor      *string `json:"next_cursor,omitempty"`
}

// Edge pairs an item with the cursor that addresses its position.
type Edge struct {
	Cursor string `json:"cursor"`
	NodeID string `json:"node_id"`
}

// SampleConnection is one page of samples plus pagination metadata.
// Items and Edges are parallel: len(Items) == len(Edges). TotalCount is the
// number of samples matching the filter regardless of pagination bounds.
type SampleConnection struct {
	PageInfo   PageInfo          `json:"page_info"`
	Edges      []Edge            `json:"edges"`
	Items      []entities.Sample `json:"items"`
	TotalCount int64             `json:"total_count"`
}

// DeleteResponse reports the outcome of a delete. Deleting an absent id is
// not an error, just Success=false.
type DeleteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
