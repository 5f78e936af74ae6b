package repository

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// generateID derives an id from the current time in milliseconds. Two calls
// within the same millisecond still get distinct ids.
func generateID() string {
	now := time.Now().UnixMilli()
	for {
		last := lastID.Load()
		if now <= last {
			now = last + 1
		}
		if lastID.CompareAndSwap(last, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}

// GenerateID is the exported form for callers that mint task and
// notification ids.
func GenerateID() string {
	return generateID()
}
