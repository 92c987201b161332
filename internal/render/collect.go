package render

import "iter"

// DefaultMaxItems caps list responses when a tool does not ask for a
// specific limit. Keeps responses small enough for an LLM context window.
const DefaultMaxItems = 100

// Collect drains a lazy, possibly unbounded sequence into a normalized
// slice, stopping silently after max items. A max of zero (or less)
// returns an empty slice without pulling from the sequence at all.
//
// Errors yielded by the sequence stop collection and propagate; the
// caller's failure boundary turns them into the uniform error string.
func Collect[T any](seq iter.Seq2[T, error], max int) ([]any, error) {
	out := []any{}
	if max <= 0 {
		return out, nil
	}
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, Normalize(item))
		if len(out) >= max {
			break
		}
	}
	return out, nil
}

// Clamp bounds a tool-supplied limit to [1, DefaultMaxItems], applying
// the default when the limit is unset.
func Clamp(limit int) int {
	if limit <= 0 {
		return DefaultMaxItems
	}
	if limit > DefaultMaxItems {
		return DefaultMaxItems
	}
	return limit
}
