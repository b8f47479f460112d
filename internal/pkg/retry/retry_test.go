package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TemirB/opsboard/internal/config"
)

func TestDo(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		policy    config.Retry
		failFirst int
		wantCalls int
		wantErr   error
	}{
		{
			name:      "first call succeeds",
			policy:    config.Retry{Attempts: 3, Base: time.Millisecond},
			wantCalls: 1,
		},
		{
			name:      "succeeds after failures",
			policy:    config.Retry{Attempts: 3, Base: time.Millisecond},
			failFirst: 2,
			wantCalls: 3,
		},
		{
			name:      "gives up",
			policy:    config.Retry{Attempts: 2, Base: time.Millisecond, JitterFactor: 0.5},
			failFirst: 5,
			wantCalls: 2,
			wantErr:   errBoom,
		},
		{
			name:      "zero attempts still calls once",
			policy:    config.Retry{},
			failFirst: 5,
			wantCalls: 1,
			wantErr:   errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), tt.policy, func() error {
				calls++
				if calls <= tt.failFirst {
					return errBoom
				}
				return nil
			})

			require.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	errFail := errors.New("fail")
	err := Do(ctx, config.Retry{Attempts: 5, Base: time.Hour}, func() error {
		calls++
		return errFail
	})

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, errFail)
	require.Equal(t, 1, calls)
}

func TestDo_PermanentStopsRetrying(t *testing.T) {
	errBoom := errors.New("boom")

	calls := 0
	err := Do(context.Background(), config.Retry{Attempts: 5, Base: time.Millisecond}, func() error {
		calls++
		return Permanent(fmt.Errorf("refresh: %w", errBoom))
	})

	require.Equal(t, 1, calls)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, "refresh: boom", err.Error())
	require.Nil(t, Permanent(nil))
}
