package cache

import (
	"encoding/json"
	"time"
)

// timestampFormat is the on-disk timestamp encoding.
const timestampFormat = time.RFC3339

// Entry is a single cached value with the instant it was written.
//
// Timestamp stays a string so one malformed entry cannot poison the whole
// document: parse failures surface per-entry as an expiration, not as a load
// failure.
type Entry struct {
	// Value is the cached payload, stored verbatim.
	Value json.RawMessage `json:"value"`

	// Timestamp is the RFC3339 instant the entry was written.
	Timestamp string `json:"timestamp"`
}

// newEntry creates an Entry for value written at now. The marshal error is
// returned so the caller can decide how to degrade.
func newEntry(value any, now time.Time) (Entry, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Value:     data,
		Timestamp: now.Format(timestampFormat),
	}, nil
}

// writtenAt parses the entry timestamp.
func (e Entry) writtenAt() (time.Time, error) {
	return time.Parse(timestampFormat, e.Timestamp)
}
