package util

import (
	"time"

	"github.com/cenkalti/backoff"
)

// BackoffFactory creates a fresh backoff policy.
type BackoffFactory func() backoff.BackOff

// NewBackoffFactory creates a new BackoffFactory based on a backoff.ExponentialBackOff which never
// gives up on its own. A multiplier of 1.0 gives a constant (randomized) interval.
func NewBackoffFactory(multiplier float64, initialInterval, maxInterval time.Duration) BackoffFactory {
	return func() backoff.BackOff {
		bo := backoff.NewExponentialBackOff()
		bo.Multiplier = multiplier
		bo.InitialInterval = initialInterval
		bo.MaxInterval = maxInterval
		bo.MaxElapsedTime = 0
		bo.Reset() // Reset is required to make the InitialInterval change take effect.
		return bo
	}
}
