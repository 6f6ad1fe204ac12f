package types

import (
	"sync"

	"github.com/goccy/go-json"
)

// State is the per-stream watermark store for one run. It serializes as a
// flat mapping from stream name to an ISO-8601 timestamp; absent entries
// default to the configured start date on the next run.
//
// The store keeps plain set semantics: callers only invoke Set with instants
// they have already decided are newer, ordering is not enforced here.
type State struct {
	*sync.RWMutex `json:"-"`
	watermarks    map[string]string
}

func NewState() *State {
	return &State{
		RWMutex:    &sync.RWMutex{},
		watermarks: map[string]string{},
	}
}

// Get returns the stream's watermark, or "" when the stream has none.
func (s *State) Get(stream string) string {
	s.RLock()
	defer s.RUnlock()
	return s.watermarks[stream]
}

// Watermark returns the stream's watermark, seeding it with fallback when
// absent so the seeded value is part of every later checkpoint.
func (s *State) Watermark(stream, fallback string) string {
	s.Lock()
	defer s.Unlock()
	if _, found := s.watermarks[stream]; !found {
		s.watermarks[stream] = fallback
	}
	return s.watermarks[stream]
}

func (s *State) Set(stream, watermark string) {
	if stream == "" || watermark == "" {
		return
	}
	s.Lock()
	defer s.Unlock()
	s.watermarks[stream] = watermark
}

func (s *State) IsZero() bool {
	s.RLock()
	defer s.RUnlock()
	return len(s.watermarks) == 0
}

// Snapshot returns a copy of the full watermark map.
func (s *State) Snapshot() map[string]string {
	s.RLock()
	defer s.RUnlock()
	snapshot := make(map[string]string, len(s.watermarks))
	for stream, watermark := range s.watermarks {
		snapshot[stream] = watermark
	}
	return snapshot
}

func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

func (s *State) UnmarshalJSON(data []byte) error {
	watermarks := map[string]string{}
	if err := json.Unmarshal(data, &watermarks); err != nil {
		return err
	}

	if s.RWMutex == nil {
		s.RWMutex = &sync.RWMutex{}
	}
	s.Lock()
	defer s.Unlock()
	s.watermarks = watermarks
	return nil
}
