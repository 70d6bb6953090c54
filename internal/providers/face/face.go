package face

import (
	"context"

	"github.com/yoockh/yoointerview/internal/models"
)

// Analyzer produces facial engagement metrics for one recorded response.
// Implementations never return an error: on any failure they return
// models.DefaultFaceMetrics with the reason set, so a broken analyzer can
// never block the interview flow.
type Analyzer interface {
	Analyze(ctx context.Context, media []byte) models.FaceMetrics
	Close() error
}
