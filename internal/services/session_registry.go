package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/providers/face"
	"github.com/yoockh/yoointerview/internal/providers/voice"
	"github.com/yoockh/yoointerview/internal/utils"
)

// RegistryConfig carries the per-session defaults the registry hands to new
// sessions.
type RegistryConfig struct {
	DefaultDuration time.Duration
	AdapterTimeout  time.Duration
	// Now overrides the clock; nil means time.Now (UTC). Tests use it.
	Now func() time.Time
}

// SessionRegistry is the process-wide session map. All state is in memory
// and lost on restart; that is an accepted property of a practice tool, not
// an oversight. The map has its own lock and is safe for concurrent
// creation and lookup; each session serializes its own operations.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*InterviewSession

	face      face.Analyzer
	voice     voice.Analyzer
	evaluator EvaluatorService

	defaultDuration time.Duration
	adapterTimeout  time.Duration
	log             *logrus.Logger
	now             func() time.Time
}

func NewSessionRegistry(
	faceAnalyzer face.Analyzer,
	voiceAnalyzer voice.Analyzer,
	evaluator EvaluatorService,
	cfg RegistryConfig,
	log *logrus.Logger,
) *SessionRegistry {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = 10 * time.Minute
	}
	if cfg.AdapterTimeout <= 0 {
		cfg.AdapterTimeout = 30 * time.Second
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if log == nil {
		log = logrus.New()
	}
	return &SessionRegistry{
		sessions:        map[string]*InterviewSession{},
		face:            faceAnalyzer,
		voice:           voiceAnalyzer,
		evaluator:       evaluator,
		defaultDuration: cfg.DefaultDuration,
		adapterTimeout:  cfg.AdapterTimeout,
		log:             log,
		now:             now,
	}
}

// Create generates the question sequence and registers a new active session.
// If generation fails or yields nothing parseable, no session is created.
func (r *SessionRegistry) Create(ctx context.Context, userID string, resume *models.ResumeData, duration time.Duration) (*InterviewSession, error) {
	const op = "SessionRegistry.Create"

	if duration <= 0 {
		duration = r.defaultDuration
	}

	questions, err := r.evaluator.GenerateQuestions(ctx, resume)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to generate questions", err)
	}
	if len(questions) == 0 {
		return nil, utils.E(utils.CodeUnavailable, op, "no questions generated", utils.ErrQuestionGeneration)
	}

	s := newInterviewSession(
		uuid.NewString(),
		userID,
		resume,
		questions,
		duration,
		r.face,
		r.voice,
		r.evaluator,
		r.adapterTimeout,
		r.log,
		r.now,
	)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"session_id":      s.ID(),
		"user_id":         userID,
		"total_questions": len(questions),
		"duration":        duration.String(),
	}).Info("session created")

	return s, nil
}

func (r *SessionRegistry) Get(sessionID string) (*InterviewSession, error) {
	const op = "SessionRegistry.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}
	return s, nil
}

func (r *SessionRegistry) Delete(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Len is used by the admin stats endpoint and the reaper log line.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartReaper drops sessions whose deadline plus the retention window has
// passed, so the map cannot grow without bound in a long-lived process.
// Runs until ctx is cancelled.
func (r *SessionRegistry) StartReaper(ctx context.Context, interval, retention time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := r.reap(retention)
				if removed > 0 {
					r.log.WithFields(logrus.Fields{
						"removed":   removed,
						"remaining": r.Len(),
					}).Info("reaped expired sessions")
				}
			}
		}
	}()
}

func (r *SessionRegistry) reap(retention time.Duration) int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int
	for id, s := range r.sessions {
		if s.Expired(now, retention) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
