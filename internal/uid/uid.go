// Package uid provides the sortable identifiers used for every asset and
// folder in the library. UIDs are UUIDv7 values: time-ordered, so their
// canonical string form sorts in creation order.
package uid

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// UID identifies one asset or folder. The zero value is Empty, meaning
// "unset / no target".
type UID uuid.UUID

// Empty is the sentinel for an unset reference (e.g. an unfiled asset).
var Empty = UID(uuid.Nil)

// New returns a fresh time-ordered UID. Assigned once at entity creation
// and immutable afterwards.
func New() UID {
	return UID(uuid.Must(uuid.NewV7()))
}

// Parse reads a UID from its canonical text form.
func Parse(s string) (UID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Empty, fmt.Errorf("parsing uid %q: %w", s, err)
	}
	return UID(u), nil
}

func (id UID) String() string {
	return uuid.UUID(id).String()
}

// IsEmpty reports whether id is the Empty sentinel.
func (id UID) IsEmpty() bool {
	return id == Empty
}

// Compare orders UIDs bytewise, which for UUIDv7 matches creation order.
func (id UID) Compare(other UID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler so UIDs round-trip through
// JSON object keys and fields as their canonical string form.
func (id UID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *UID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
