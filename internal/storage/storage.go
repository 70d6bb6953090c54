package storage

import (
	"context"
	"io"
)

// Uploader archives a blob (resume file, response media) and returns where it
// was stored. Archival is best-effort everywhere it is used; no session state
// depends on it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
