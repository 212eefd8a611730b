// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"time"
)

// =============================================================================
// RETRY POLICY
// =============================================================================

// RetryPolicy decides whether and when a failed call is attempted again.
// The client itself never retries; a caller that wants retries runs its
// call through Do with a policy. The UI deliberately uses NoRetry
// everywhere — the user resubmitting IS the retry loop — but the extension
// point exists so that a different frontend can layer backoff in one place
// instead of sprinkling it through call sites.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 behave as 1.
	MaxAttempts int
	// BaseDelay is the backoff before the second attempt; it doubles per
	// attempt up to MaxDelay.
	BaseDelay time.Duration
	// MaxDelay caps the backoff.
	MaxDelay time.Duration
}

// NoRetry performs a single attempt. This is the default everywhere.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// DefaultBackoff is a conservative policy for callers that opt in:
// three attempts at 500ms, 1s delays.
var DefaultBackoff = RetryPolicy{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    10 * time.Second,
}

// Do runs fn under the policy. Only transient failures (5xx, 429) are
// retried; validation-level statuses and transport errors surface
// immediately, as does context cancellation.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.delay(attempt)):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsRetryable() {
			return err
		}
	}
	return lastErr
}

// delay returns the backoff before the given attempt (1-based for the
// first retry).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay * time.Duration(1<<uint(attempt-1))
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}
