package infra

import (
	"math"
	"time"
)

const (
	baseRetryDelay = 1 * time.Second
	maxRetryDelay  = 60 * time.Second
)

// CalculateBackoff returns the delay before retry number retryCount (0-based):
// 1s, 2s, 4s, ... capped at 60s.
func CalculateBackoff(retryCount int) time.Duration {
	// Cap retry count to prevent overflow (2^6 = 64 seconds > max 60s)
	if retryCount > 6 {
		return maxRetryDelay
	}
	if retryCount < 0 {
		retryCount = 0
	}
	delay := baseRetryDelay * time.Duration(math.Pow(2, float64(retryCount)))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}
