package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clusterState string

const stateRunning clusterState = "RUNNING"

type retryCount int

type address struct {
	City string `json:"city"`
	Zip  string `json:"zip_code"`
}

type person struct {
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Address *address `json:"address"`
	Tags    []string `json:"tags"`
	hidden  string
}

type fielderValue struct{}

func (fielderValue) NormalFields() map[string]any {
	return map[string]any{"x": 1, "y": nil, "z": (*address)(nil)}
}

type opaque struct{ a, b int }

func TestNormalizePrimitives(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Equal(t, "hello", Normalize("hello"))
	assert.Equal(t, 42, Normalize(42))
	assert.Equal(t, 3.14, Normalize(3.14))
	assert.Equal(t, true, Normalize(true))
	assert.Equal(t, false, Normalize(false))
}

func TestNormalizeMapPreservesExplicitNil(t *testing.T) {
	got := Normalize(map[string]any{"a": 1, "b": nil})
	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, m["a"])

	// An explicit nil inside a plain map is data, not an absent field.
	v, present := m["b"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestNormalizeNestedMap(t *testing.T) {
	got := Normalize(map[string]any{"outer": map[string]any{"inner": 99}})
	assert.Equal(t, map[string]any{"outer": map[string]any{"inner": 99}}, got)
}

func TestNormalizeSequences(t *testing.T) {
	list := Normalize([]any{1, "two", 3.0})
	assert.Equal(t, []any{1, "two", 3.0}, list)

	// Fixed-size sequences normalize identically to slices.
	arr := Normalize([2]string{"a", "b"})
	assert.Equal(t, []any{"a", "b"}, arr)

	withNil := Normalize([]any{nil, "x"}).([]any)
	assert.Len(t, withNil, 2)
	assert.Nil(t, withNil[0])
}

func TestNormalizeStructDropsAbsentFields(t *testing.T) {
	got := Normalize(person{Name: "Ada", Age: 36}).(map[string]any)

	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, int64(36), got["age"])
	assert.NotContains(t, got, "address")
	assert.NotContains(t, got, "tags")
	assert.NotContains(t, got, "hidden")
}

func TestNormalizeStructNested(t *testing.T) {
	p := person{Name: "Ada", Address: &address{City: "Oslo", Zip: "0150"}}
	got := Normalize(p).(map[string]any)

	addr, ok := got["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Oslo", addr["city"])
	assert.Equal(t, "0150", addr["zip_code"])
}

func TestNormalizeEnumUnderlyingScalar(t *testing.T) {
	assert.Equal(t, "RUNNING", Normalize(stateRunning))
	assert.Equal(t, int64(3), Normalize(retryCount(3)))
}

func TestNormalizeFielder(t *testing.T) {
	got := Normalize(fielderValue{}).(map[string]any)
	assert.Equal(t, map[string]any{"x": int64(1)}, got)
}

func TestNormalizePointerDeref(t *testing.T) {
	s := "ptr"
	assert.Equal(t, "ptr", Normalize(&s))

	var nilPtr *address
	assert.Nil(t, Normalize(nilPtr))
}

func TestNormalizeTime(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01T12:00:00Z", Normalize(ts))
}

func TestNormalizeFallbackString(t *testing.T) {
	got := Normalize(make(chan int))
	_, isString := got.(string)
	assert.True(t, isString, "unrecognized values fall back to their string form")

	// Structs with no exported fields normalize to an empty mapping.
	assert.Equal(t, map[string]any{}, Normalize(opaque{a: 1, b: 2}))
}
