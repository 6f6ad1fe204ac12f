package types

// Message is a dto for one output row of the connector; exactly one of the
// payload fields is set, selected by Type.
type Message struct {
	Type             MessageType    `json:"type"`
	Log              *Log           `json:"log,omitempty"`
	ConnectionStatus *StatusRow     `json:"connectionStatus,omitempty"`
	Schema           *SchemaRow     `json:"schema,omitempty"`
	Record           *RecordRow     `json:"record,omitempty"`
	State            *State         `json:"state,omitempty"`
	Spec             map[string]any `json:"spec,omitempty"`
}

// Log is a dto for log serialization
type Log struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusRow is a dto for check result serialization
type StatusRow struct {
	Status  ConnectionStatus `json:"status,omitempty"`
	Message string           `json:"message,omitempty"`
}

// SchemaRow announces a stream's field types and key properties; emitted once
// per stream before any of its records.
type SchemaRow struct {
	Stream        string      `json:"stream"`
	Schema        *TypeSchema `json:"schema"`
	KeyProperties []string    `json:"key_properties"`
}

// RecordRow is one extracted entity tagged with its stream name.
type RecordRow struct {
	Stream string         `json:"stream"`
	Data   map[string]any `json:"data"`
}
