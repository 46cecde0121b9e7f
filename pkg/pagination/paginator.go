package pagination

import (
	"context"
	"errors"
	"iter"
	"log/slog"
)

// ErrSequenceConsumed is yielded when a paginated sequence is ranged over a second time.
var ErrSequenceConsumed = errors.New("pagination: sequence already consumed")

// Fetcher performs one network round trip for one page.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, req CursorRequest) (*Page[T], error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, req CursorRequest) (*Page[T], error)

func (f FetcherFunc[T]) FetchPage(ctx context.Context, req CursorRequest) (*Page[T], error) {
	return f(ctx, req)
}

type options struct {
	stop StopRule
}

type Option func(*options)

// WithStopRule overrides the end-of-data rule applied after each non-empty page.
func WithStopRule(rule StopRule) Option {
	return func(o *options) {
		if rule != nil {
			o.stop = rule
		}
	}
}

// Paginate drives fetcher page by page into a single sequence of at most maxItems items.
//
// The sequence is lazy and single pass: a page is fetched only when the consumer asks for an
// item beyond the ones already fetched, and nothing is read ahead. Items keep page order and
// intra-page order; duplicates are passed through. A zero-item page or the stop rule ends the
// sequence cleanly. A fetch error is yielded once as the final element; items yielded before
// it remain valid. No fetch is retried.
func Paginate[T any](ctx context.Context, term string, maxItems int, fetcher Fetcher[T], opts ...Option) iter.Seq2[T, error] {
	o := options{stop: RepeatedCursor}
	for _, opt := range opts {
		opt(&o)
	}

	consumed := false

	return func(yield func(T, error) bool) {
		var zero T
		if consumed {
			yield(zero, ErrSequenceConsumed)
			return
		}
		consumed = true

		var cursor *string
		emitted := 0
		pages := 0

		for {
			remaining := maxItems - emitted
			if remaining <= 0 {
				return
			}

			if err := ctx.Err(); err != nil {
				yield(zero, err)
				return
			}

			page, err := fetcher.FetchPage(ctx, CursorRequest{
				Term:   term,
				Size:   remaining,
				Cursor: cursor,
			})
			if err != nil {
				slog.Debug("Page fetch failed", "term", term, "page", pages, "emitted", emitted, "error", err)
				yield(zero, err)
				return
			}
			pages++

			if page == nil || len(page.Items) == 0 {
				slog.Debug("Empty page, pagination done", "term", term, "pages", pages, "emitted", emitted)
				return
			}

			slog.Debug("Fetched page", "term", term, "page", pages, "items", len(page.Items), "has_next", page.NextCursor != nil)

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
				emitted++
				if emitted >= maxItems {
					return
				}
			}

			if o.stop(cursor, page.NextCursor) {
				slog.Debug("Cursor exhausted, pagination done", "term", term, "pages", pages, "emitted", emitted)
				return
			}
			cursor = page.NextCursor
		}
	}
}

// Collect drains seq into a slice. On error it returns the items read so far with the error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
