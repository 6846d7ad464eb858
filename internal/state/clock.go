package state

import (
	"time"

	"github.com/google/uuid"
)

// Now returns the current time in unix milliseconds. Tests replace it to
// drive throttling deterministically.
var Now = func() int64 {
	return time.Now().UnixMilli()
}

// NewGroupID returns a fresh identifier for a recorded point group.
func NewGroupID() string {
	return uuid.NewString()
}
