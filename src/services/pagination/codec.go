// Package pagination turns filtered result sets into connections with
// opaque, positional cursors.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

// DefaultLimit applies when the caller does not bound the page.
const DefaultLimit = 25

// Cursor addresses a position in the fixed sort order: creation timestamp
// descending, ties broken by id ascending. Because it encodes the sort key
// rather than referencing the item, it still bisects the ordering after the
// item it came from is deleted.
type Cursor struct {
	SortKey int64  `json:"k"`
	ID      string `json:"id"`
}

// PageArgs are the pagination arguments shared by the list queries. After
// and Before are cursors; Skip is an absolute offset applied within the
// cursor-bounded window.
type PageArgs struct {
	Limit  *int
	After  *string
	Before *string
	Skip   *int
}

// EncodeCursor renders a cursor as an opaque token.
func EncodeCursor(c Cursor) string {
	raw, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor parses an opaque token. A malformed token is a validation
// failure, not a store error.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: malformed cursor", domain.ErrValidation)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: malformed cursor", domain.ErrValidation)
	}
	return c, nil
}

func cursorFor(s entities.Sample) Cursor {
	return Cursor{SortKey: s.Node.DateCreated.Unix(), ID: s.ID}
}

// precedes reports whether position a comes strictly before position b in
// the sort order (newer first, then id ascending).
func precedes(a, b Cursor) bool {
	if a.SortKey != b.SortKey {
		return a.SortKey > b.SortKey
	}
	return a.ID < b.ID
}

// Paginate sorts the filtered set, applies the cursor window, skip and
// limit, and shapes the resulting page into a connection. TotalCount always
// reflects the whole filtered set.
func Paginate(items []entities.Sample, args PageArgs) (domain.SampleConnection, error) {
	sort.Slice(items, func(i, j int) bool {
		return precedes(cursorFor(items[i]), cursorFor(items[j]))
	})

	windowStart := 0
	windowEnd := len(items)

	if args.After != nil {
		after, err := DecodeCursor(*args.After)
		if err != nil {
			return domain.SampleConnection{}, err
		}
		windowStart = sort.Search(len(items), func(i int) bool {
			return precedes(after, cursorFor(items[i]))
		})
	}
	if args.Before != nil {
		before, err := DecodeCursor(*args.Before)
		if err != nil {
			return domain.SampleConnection{}, err
		}
		windowEnd = sort.Search(len(items), func(i int) bool {
			return !precedes(cursorFor(items[i]), before)
		})
	}
	if windowEnd < windowStart {
		windowEnd = windowStart
	}

	start := windowStart
	if args.Skip != nil && *args.Skip > 0 {
		start += *args.Skip
	}
	if start > windowEnd {
		start = windowEnd
	}

	limit := DefaultLimit
	if args.Limit != nil && *args.Limit >= 0 {
		limit = *args.Limit
	}
	end := start + limit
	if end > windowEnd {
		end = windowEnd
	}

	page := items[start:end]

	connection := domain.SampleConnection{
		Items:      make([]entities.Sample, len(page)),
		Edges:      make([]domain.Edge, len(page)),
		TotalCount: int64(len(items)),
	}
	copy(connection.Items, page)
	for i, item := range page {
		connection.Edges[i] = domain.Edge{
			Cursor: EncodeCursor(cursorFor(item)),
			NodeID: item.ID,
		}
	}

	if len(page) > 0 {
		connection.PageInfo.HasPreviousPage = start > 0
		connection.PageInfo.HasNextPage = end < len(items)
		connection.PageInfo.StartCursor = &connection.Edges[0].Cursor
		connection.PageInfo.NextCursor = &connection.Edges[len(page)-1].Cursor
	}

	return connection, nil
}
