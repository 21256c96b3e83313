package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPin(t *testing.T) {
	hash, err := HashPin("4821")
	require.NoError(t, err)
	assert.NotEqual(t, "4821", hash)

	assert.True(t, CheckPinHash("4821", hash))
	assert.False(t, CheckPinHash("4822", hash))
	assert.False(t, CheckPinHash("4821", "not-a-hash"))
}

func TestIsValidPin(t *testing.T) {
	tests := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"12345678", true},
		{"123", false},
		{"123456789", false},
		{"12a4", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPin(tt.pin))
		})
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
