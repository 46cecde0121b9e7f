package pagination

// CursorRequest is one page round trip. Cursor is opaque and forwarded verbatim;
// nil means the first page.
type CursorRequest struct {
	Term   string  `json:"term"`
	Size   int     `json:"size"`
	Cursor *string `json:"cursor,omitempty"`
}

// Validate normalizes the page size to the upstream ceiling.
func (r *CursorRequest) Validate() error {
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	return nil
}

// HasCursor reports whether the request continues a previous page.
func (r *CursorRequest) HasCursor() bool {
	return r.Cursor != nil && *r.Cursor != ""
}
