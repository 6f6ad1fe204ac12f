package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateWatermarkSeedsFallback(t *testing.T) {
	state := NewState()
	require.True(t, state.IsZero())

	got := state.Watermark("contacts", "2020-01-01T00:00:00Z")
	assert.Equal(t, "2020-01-01T00:00:00Z", got)

	// the seeded value is now part of the state
	assert.False(t, state.IsZero())
	assert.Equal(t, "2020-01-01T00:00:00Z", state.Get("contacts"))

	// a later lookup with a different fallback returns the seeded value
	got = state.Watermark("contacts", "2021-06-01T00:00:00Z")
	assert.Equal(t, "2020-01-01T00:00:00Z", got)
}

func TestStateSetIgnoresEmpty(t *testing.T) {
	state := NewState()
	state.Set("", "2020-01-01T00:00:00Z")
	state.Set("contacts", "")
	assert.True(t, state.IsZero())
}

func TestStateSerializesAsFlatMap(t *testing.T) {
	state := NewState()
	state.Set("contacts", "2020-01-01T00:00:00Z")
	state.Set("deals", "2020-02-01T00:00:00Z")

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{"contacts":"2020-01-01T00:00:00Z","deals":"2020-02-01T00:00:00Z"}`, string(data))

	loaded := NewState()
	require.NoError(t, json.Unmarshal(data, loaded))
	assert.Equal(t, state.Snapshot(), loaded.Snapshot())
}

func TestStateSnapshotIsACopy(t *testing.T) {
	state := NewState()
	state.Set("contacts", "2020-01-01T00:00:00Z")

	snapshot := state.Snapshot()
	snapshot["contacts"] = "mutated"
	assert.Equal(t, "2020-01-01T00:00:00Z", state.Get("contacts"))
}
