package chain

import (
	"fmt"
	"strings"
)

// ConsistencyError reports that the backward fork-point search reached
// genesis without the store and the provider ever agreeing on a hash.
// This means a wrong network or a corrupted store and needs operator
// intervention; it must not be retried automatically.
type ConsistencyError struct {
	Height int64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("no common ancestor below height %d down to genesis; store and provider disagree on the entire chain", e.Height)
}

// Status codes are matched anchored to the node client's error format so a
// permanent error that merely mentions a height or size like 503 is not
// mistaken for a gateway failure.
var retryableFragments = []string{
	"connection reset",
	"connection refused",
	"timeout",
	"timed out",
	"status code: 429",
	"status code: 5",
	"http 429",
	"http 5",
	"too many requests",
	"rate limit",
	"work queue depth exceeded",
	"temporary failure",
}

// IsRetryable reports whether a provider error is transient. Network drops,
// gateway errors and rate-limit responses are retried; everything else is
// treated as a permanent provider error and propagated.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	for _, fragment := range retryableFragments {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
