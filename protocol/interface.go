package protocol

import (
	"context"

	"github.com/streamzip/tap-hubspot/types"
)

// Driver is the contract between the command layer and a connector
// implementation. The command layer owns process concerns (flags, files,
// exit codes); the driver owns the source.
type Driver interface {
	Type() string
	// GetConfigRef returns a pointer the command layer unmarshals the config
	// file into before Setup is called.
	GetConfigRef() any
	// Spec returns the JSON schema describing the connector's config.
	Spec() map[string]any
	// Setup validates config and establishes connectivity; it must fail on
	// bad credentials before any stream starts.
	Setup(ctx context.Context) error
	SetupState(state *types.State)
	SetupWriter(writer types.RecordWriter)
	// Sync extracts all streams sequentially, emitting schema, record and
	// state messages through the writer.
	Sync(ctx context.Context) error
}
