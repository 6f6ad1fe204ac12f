package driver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTypeSchema(t *testing.T) {
	assert.Equal(t, []string{"null", "boolean"}, fieldTypeSchema("bool").Type)
	// datetimes arrive in shapes unix parsing cannot rely on
	assert.Equal(t, []string{"null", "string"}, fieldTypeSchema("datetime").Type)
	// numeric properties can carry values like 'N/A'
	assert.Equal(t, []string{"null", "number", "string"}, fieldTypeSchema("number").Type)
	assert.Equal(t, []string{"null", "string"}, fieldTypeSchema("enumeration").Type)
}

func TestFieldSchemaEnvelope(t *testing.T) {
	plain := fieldSchema("string", false)
	require.Contains(t, plain.Properties, "value")
	assert.NotContains(t, plain.Properties, "timestamp")

	rich := fieldSchema("string", true)
	for _, key := range []string{"value", "timestamp", "source", "sourceId"} {
		assert.Contains(t, rich.Properties, key)
	}
}

func TestLoadSchemaMergesCustomProperties(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/properties/v1/contacts/properties", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"name": "firstname", "type": "string"},
			{"name": "numemployees", "type": "number"},
		})
	})
	h, _ := newTestHubspot(t, mux, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	schema, err := h.loadSchema(context.Background(), "contacts")
	require.NoError(t, err)

	// static base fields survive the merge
	require.Contains(t, schema.Properties, "canonical-vid")
	custom := schema.Properties["properties"]
	require.NotNil(t, custom)
	require.Contains(t, custom.Properties, "firstname")
	require.Contains(t, custom.Properties, "numemployees")

	// contacts properties carry the bare value envelope
	assert.NotContains(t, custom.Properties["firstname"].Properties, "timestamp")
}

func TestLoadSchemaStaticStreams(t *testing.T) {
	h, _ := newTestHubspot(t, http.NewServeMux(), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	// no properties endpoint is consulted for the static streams
	schema, err := h.loadSchema(context.Background(), "owners")
	require.NoError(t, err)
	assert.Contains(t, schema.Properties, "ownerId")

	_, err = h.loadSchema(context.Background(), "nope")
	assert.Error(t, err)
}
