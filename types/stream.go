package types

// Stream is a named entity type with the key properties downstream consumers
// use for uniqueness. Immutable per run; defined by configuration.
type Stream struct {
	Name          string   `json:"name"`
	KeyProperties []string `json:"key_properties"`
}
