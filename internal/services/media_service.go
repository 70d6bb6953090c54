package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/yoointerview/internal/storage"
)

// MediaService archives uploaded blobs (resume files, response recordings)
// for later inspection. Archiving is strictly best-effort: with no uploader
// configured it is a no-op, and upload failures are logged and swallowed so
// they can never fail a request.
type MediaService interface {
	Archive(ctx context.Context, kind, sessionID, fileName, contentType string, r io.Reader) string
}

type mediaService struct {
	uploader storage.Uploader
	log      *logrus.Logger
}

func NewMediaService(uploader storage.Uploader, log *logrus.Logger) MediaService {
	if log == nil {
		log = logrus.New()
	}
	return &mediaService{uploader: uploader, log: log}
}

// Archive returns the stored path, or "" when archiving is disabled or the
// upload failed.
func (s *mediaService) Archive(ctx context.Context, kind, sessionID, fileName, contentType string, r io.Reader) string {
	if s.uploader == nil {
		return ""
	}

	objectName := fmt.Sprintf("%s/%s/%d-%s-%s", kind, sessionID, time.Now().UTC().Unix(), uuid.NewString()[:8], fileName)

	path, err := s.uploader.Upload(ctx, objectName, contentType, r)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"kind":       kind,
			"session_id": sessionID,
		}).Warn("media archive failed")
		return ""
	}
	return path
}
