package storage

import (
	"context"
	"io"
)

// Uploader stores an object and returns its public URL. Project images get
// uploaded here before the resulting URL is saved on the project document.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
