package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.True(t, errors.Is(wrappedError, tt.originalError))
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "wrapper message"))
	assert.NoError(t, WrapErrorf(nil, "case %d", 3))
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")
	err := WrapErrorf(base, "case %s failed", "12")

	assert.Equal(t, "case 12 failed: boom", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("resident_text", 42, "too large")

	assert.Equal(t, "validation failed for field 'resident_text': too large (value: 42)", err.Error())
	assert.ErrorIs(t, WrapError(err, "diff failed"), ErrInvalidInput)

	var target *ValidationError
	assert.True(t, errors.As(WrapError(err, "outer"), &target))
	assert.Equal(t, "resident_text", target.Field)
}

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "section and field",
			err:      NewConfigurationError("diff_config", "granularity", "unknown value"),
			expected: "configuration error in section 'diff_config', field 'granularity': unknown value",
		},
		{
			name:     "section only",
			err:      NewConfigurationError("log_config", "", "no writers"),
			expected: "configuration error in section 'log_config': no writers",
		},
		{
			name:     "reason only",
			err:      NewConfigurationError("", "", "missing"),
			expected: "configuration error: missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidConfiguration)
		})
	}
}
