package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCheckCancellation(t *testing.T) {
	assert.Equal(t, ContextCheckResult{}, CheckCancellation(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := CheckCancellationWithLog(ctx, zerolog.Nop(), "test")
	assert.True(t, result.Cancelled)
	assert.ErrorIs(t, result.Error, context.Canceled)
}

func TestIsContextError(t *testing.T) {
	assert.True(t, IsContextError(context.Canceled))
	assert.True(t, IsContextError(fmt.Errorf("case 3: %w", context.DeadlineExceeded)))
	assert.False(t, IsContextError(errors.New("boom")))
	assert.False(t, IsContextError(nil))
}
