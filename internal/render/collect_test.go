package render

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqOf(items ...any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func TestCollectRespectsCap(t *testing.T) {
	tests := []struct {
		name string
		n    int
		max  int
		want int
	}{
		{"under cap", 3, 10, 3},
		{"at cap", 5, 5, 5},
		{"over cap", 20, 5, 5},
		{"cap of one", 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]any, tt.n)
			for i := range items {
				items[i] = i
			}
			got, err := Collect(seqOf(items...), tt.max)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestCollectPreservesOrderAndNormalizes(t *testing.T) {
	got, err := Collect(seqOf(person{Name: "a"}, person{Name: "b"}), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].(map[string]any)["name"])
	assert.Equal(t, "b", got[1].(map[string]any)["name"])
}

func TestCollectZeroCapDoesNotConsume(t *testing.T) {
	pulled := false
	seq := func(yield func(any, error) bool) {
		pulled = true
		yield(1, nil)
	}

	got, err := Collect(iter.Seq2[any, error](seq), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, pulled, "zero cap must not drain the sequence")
}

func TestCollectEmptySequence(t *testing.T) {
	got, err := Collect(seqOf(), 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectPropagatesIterationError(t *testing.T) {
	boom := errors.New("page fetch failed")
	seq := func(yield func(any, error) bool) {
		if !yield("first", nil) {
			return
		}
		yield(nil, boom)
	}

	_, err := Collect(iter.Seq2[any, error](seq), 10)
	assert.ErrorIs(t, err, boom)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, DefaultMaxItems, Clamp(0))
	assert.Equal(t, DefaultMaxItems, Clamp(-5))
	assert.Equal(t, 25, Clamp(25))
	assert.Equal(t, DefaultMaxItems, Clamp(5000))
}
