package voice

import (
	"context"

	"github.com/yoockh/yoointerview/internal/models"
)

// Analyzer produces vocal delivery metrics for one recorded response. Same
// contract as the face analyzer: never returns an error, degrades to
// models.DefaultVoiceMetrics with the reason set.
type Analyzer interface {
	Analyze(ctx context.Context, media []byte) models.VoiceMetrics
	Close() error
}
