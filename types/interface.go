package types

// Iterable is a lazy, finite, non restartable sequence. Err must be checked
// once Next returns false.
type Iterable interface {
	Next() bool
	Err() error
}

// RecordWriter receives the three protocol message kinds in stream order:
// one schema announcement, zero or more records, then state checkpoints.
type RecordWriter interface {
	Schema(stream string, schema *TypeSchema, keyProperties []string) error
	Record(stream string, data map[string]any) error
	State(state *State) error
}
