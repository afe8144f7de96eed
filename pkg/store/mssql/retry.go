package mssql

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

// retryPolicy retries stored-procedure calls that fail with errors the server
// is known to recover from (deadlock victim, lock/connection timeouts).
type retryPolicy struct {
	maxAttempts int
	delay       time.Duration
}

var defaultRetryPolicy = retryPolicy{maxAttempts: 3, delay: 2 * time.Second}

var retryableKeywords = []string{"deadlock", "timeout", "connection", "lock"}

func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, kw := range retryableKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func (p retryPolicy) run(ctx context.Context, name string, fn func() (store.Result, error)) (store.Result, error) {
	logger := zerolog.Ctx(ctx)

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}
		lastErr = err

		if attempt == p.maxAttempts || !isRetryable(err) {
			break
		}

		logger.Warn().
			Err(err).
			Str("operation", name).
			Int("attempt", attempt).
			Int("max_attempts", p.maxAttempts).
			Msg("retrying stored procedure")

		select {
		case <-ctx.Done():
			return store.Result{}, ctx.Err()
		case <-time.After(p.delay * time.Duration(attempt)):
		}
	}
	return store.Result{}, lastErr
}
