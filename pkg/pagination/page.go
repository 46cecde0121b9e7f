package pagination

// Page is one upstream page of items.
// Generic type T allows reuse across different entity types
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// NewPage creates a page. An empty next cursor is treated as absent.
func NewPage[T any](items []T, next string) *Page[T] {
	p := &Page[T]{Items: items}
	if next != "" {
		p.NextCursor = &next
	}
	return p
}

// StopRule decides whether a page ends the sequence, given the cursor that was submitted
// for it and the cursor it returned.
type StopRule func(submitted, next *string) bool

// RepeatedCursor ends pagination when the upstream returns no cursor or hands back the
// cursor it was just given. The repeat case guards against an observed upstream quirk and
// is a heuristic, not a protocol guarantee.
func RepeatedCursor(submitted, next *string) bool {
	if next == nil {
		return true
	}
	return submitted != nil && *submitted == *next
}

// MissingCursor ends pagination only when no next cursor is returned.
func MissingCursor(_, next *string) bool {
	return next == nil
}
