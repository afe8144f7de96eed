package mssql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-analytics/resort-dmr/pkg/models/store"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"Transaction was deadlocked on lock resources", true},
		{"Timeout expired", true},
		{"connection was forcibly closed", true},
		{"Lock request time out period exceeded", true},
		{"Invalid object name 'Shakudo_DMRGetRevenue'", false},
		{"Incorrect syntax near 'exec'", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryable(fmt.Errorf("%s", tt.err)))
		})
	}
}

func TestRetryPolicyRecovers(t *testing.T) {
	policy := retryPolicy{maxAttempts: 3, delay: time.Millisecond}

	attempts := 0
	res, err := policy.run(context.Background(), "revenue", func() (store.Result, error) {
		attempts++
		if attempts < 3 {
			return store.Result{}, fmt.Errorf("deadlock victim")
		}
		return store.Result{Columns: []string{"Revenue"}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []string{"Revenue"}, res.Columns)
}

func TestRetryPolicyGivesUp(t *testing.T) {
	policy := retryPolicy{maxAttempts: 3, delay: time.Millisecond}

	attempts := 0
	_, err := policy.run(context.Background(), "revenue", func() (store.Result, error) {
		attempts++
		return store.Result{}, fmt.Errorf("deadlock victim")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryPolicyStopsOnPermanentError(t *testing.T) {
	policy := retryPolicy{maxAttempts: 3, delay: time.Millisecond}

	attempts := 0
	_, err := policy.run(context.Background(), "revenue", func() (store.Result, error) {
		attempts++
		return store.Result{}, fmt.Errorf("incorrect syntax")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryPolicyHonorsContext(t *testing.T) {
	policy := retryPolicy{maxAttempts: 3, delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := policy.run(ctx, "revenue", func() (store.Result, error) {
		return store.Result{}, fmt.Errorf("deadlock victim")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
