package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrInvalidColor", ErrInvalidColor},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrDetachedNode", ErrDetachedNode},
		{"ErrStore", ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

// TestErrAlreadyExists tests ErrAlreadyExists error
func TestErrAlreadyExists(t *testing.T) {
	assert.Equal(t, "already exists", ErrAlreadyExists.Error())
	assert.True(t, errors.Is(ErrAlreadyExists, ErrAlreadyExists))
	assert.False(t, errors.Is(ErrAlreadyExists, ErrNotFound))
}

func TestErrDetachedNode_Wrapped(t *testing.T) {
	err := fmt.Errorf("node 3: %w", ErrDetachedNode)

	assert.ErrorIs(t, err, ErrDetachedNode)
	assert.NotErrorIs(t, err, ErrStore)
}

func TestErrStore_Wrapped(t *testing.T) {
	err := fmt.Errorf("%w: connection refused", ErrStore)

	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "keyword store unavailable")
}
