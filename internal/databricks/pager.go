package databricks

import (
	"context"
	"iter"
	"net/url"
)

// pages lazily yields every item of a token-paginated listing. fetch is
// called with the page token ("" for the first page) and returns the
// page's items plus the next token; an empty next token ends the
// sequence. Nothing is fetched until the sequence is pulled, so a
// consumer that stops early never pays for the remaining pages.
func pages[T any](ctx context.Context, fetch func(ctx context.Context, pageToken string) ([]T, string, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var token string
		for {
			items, next, err := fetch(ctx, token)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if next == "" {
				return
			}
			token = next
		}
	}
}

// sliceSeq adapts an already-fetched slice to the sequence shape the
// collector consumes.
func sliceSeq[T any](items []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// withToken appends a page_token parameter to an existing query string.
func withToken(q url.Values, token string) url.Values {
	if token != "" {
		q.Set("page_token", token)
	}
	return q
}

// pathWithQuery joins a path and query values, omitting the "?" when
// the query is empty.
func pathWithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
