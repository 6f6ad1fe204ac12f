package constants

import "time"

const (
	// ConfigFolder is the viper key holding the directory logs are written to
	ConfigFolder = "CONFIG_FOLDER"
	// StatePath is the viper key holding the path the watermark state file is written to
	StatePath = "STATE_PATH"

	// DefaultRetryCount is the total number of attempts made for a retryable request
	DefaultRetryCount = 5
	// DefaultBackoffFactor is the exponential backoff base for retryable requests
	DefaultBackoffFactor = 2

	// TokenExpiryMargin is subtracted from the server reported token lifetime so
	// refresh always happens before the token is actually rejected
	TokenExpiryMargin = 600 * time.Second

	// FullSyncThresholdDays switches contacts/companies/deals from the recent
	// endpoint variant to a full crawl; the recent endpoints only keep a bounded look-back
	FullSyncThresholdDays = 30

	// ContactsDetailBatchSize is the number of vids fetched per contacts detail call
	ContactsDetailBatchSize = 100
	// DetailCheckpointEvery is the record cadence at which companies/deals checkpoint state
	DetailCheckpointEvery = 250

	// ChunkedPageLimit is the page size requested from the chunked timeline endpoints
	ChunkedPageLimit = 1000
)

// Chunk sizes for high volume timeline streams, expressed in epoch milliseconds.
const (
	EmailEventsChunkMS         = int64(1000 * 60 * 60)
	SubscriptionChangesChunkMS = int64(1000 * 60 * 60 * 24)
)
