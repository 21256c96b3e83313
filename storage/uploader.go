package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// UploadResult describes a stored object.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores team logos. Keys are bucket-relative paths built with TeamLogoKey.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	// GetPublicURL returns "" when the uploader has no public base URL.
	GetPublicURL(key string) string
}

// TeamLogoKey is tournaments/<tournament>/teams/<team>/logo-<unique><ext>. A fresh unique part per
// upload keeps CDN caches from serving the previous image.
func TeamLogoKey(tournamentID, teamID, unique, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("tournaments/%s/teams/%s/logo-%s%s", tournamentID, teamID, unique, ext)
}
