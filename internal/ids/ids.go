package ids

import "github.com/segmentio/ksuid"

// New returns a k-sortable unique identifier. Creation order of records
// sharing a timestamp is preserved when sorting by id.
func New() string {
	return ksuid.New().String()
}
