package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"plain", "https://cdn.example.com", "logos/a.png", "https://cdn.example.com/logos/a.png"},
		{"trailing slash", "https://cdn.example.com/", "logos/a.png", "https://cdn.example.com/logos/a.png"},
		{"leading slash key", "https://cdn.example.com/assets", "/logos/a.png", "https://cdn.example.com/assets/logos/a.png"},
		{"empty key", "https://cdn.example.com", "", ""},
		{"empty base", "", "logos/a.png", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicURL(tt.base, tt.key))
		})
	}
}

func TestNewCloudflareR2UploaderRequiresAllFields(t *testing.T) {
	cfg := CloudflareR2UploaderConfig{AccountID: "acc", BucketName: "logos"}
	assert.True(t, cfg.Enabled())

	_, err := NewCloudflareR2Uploader(context.Background(), cfg)
	require.Error(t, err)

	assert.False(t, CloudflareR2UploaderConfig{}.Enabled())
}

func TestTeamLogoKey(t *testing.T) {
	assert.Equal(t, "tournaments/t1/teams/a/logo-u1.png", TeamLogoKey("t1", "a", "u1", ".png"))
	assert.Equal(t, "tournaments/t1/teams/a/logo-u1.svg", TeamLogoKey("t1", "a", "u1", "svg"))
	assert.Equal(t, "tournaments/t1/teams/a/logo-u1", TeamLogoKey("t1", "a", "u1", ""))
}
