package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/providers/face"
	"github.com/yoockh/yoointerview/internal/providers/voice"
	"github.com/yoockh/yoointerview/internal/utils"
)

// InterviewSession owns one candidate's timed interview attempt: the fixed
// question sequence, the cursor, the append-only response log, and the
// lifecycle status.
//
// Two locks with distinct jobs: opMu serializes SubmitResponse and End end
// to end (single writer per session, including the analysis fan-out), while
// mu guards field access so Progress stays cheap during a long-running
// submission. Invariant throughout: len(responses) == currentIndex, and
// status only ever moves forward (active -> timed_out/complete).
type InterviewSession struct {
	opMu sync.Mutex
	mu   sync.Mutex

	sessionID    string
	userID       string
	createdAt    time.Time
	deadline     time.Time
	status       models.SessionStatus
	resume       *models.ResumeData
	questions    []models.Question
	currentIndex int
	responses    []models.ResponseRecord
	summary      *models.SessionSummary

	face           face.Analyzer
	voice          voice.Analyzer
	evaluator      EvaluatorService
	adapterTimeout time.Duration

	log *logrus.Logger
	now func() time.Time
}

func newInterviewSession(
	id string,
	userID string,
	resume *models.ResumeData,
	questions []models.Question,
	duration time.Duration,
	faceAnalyzer face.Analyzer,
	voiceAnalyzer voice.Analyzer,
	evaluator EvaluatorService,
	adapterTimeout time.Duration,
	log *logrus.Logger,
	now func() time.Time,
) *InterviewSession {
	created := now()
	return &InterviewSession{
		sessionID:      id,
		userID:         userID,
		createdAt:      created,
		deadline:       created.Add(duration),
		status:         models.StatusActive,
		resume:         resume,
		questions:      questions,
		responses:      []models.ResponseRecord{},
		face:           faceAnalyzer,
		voice:          voiceAnalyzer,
		evaluator:      evaluator,
		adapterTimeout: adapterTimeout,
		log:            log,
		now:            now,
	}
}

func (s *InterviewSession) ID() string { return s.sessionID }

// OwnerID reports the user that started the session.
func (s *InterviewSession) OwnerID() string { return s.userID }

// FirstQuestion is what the transport returns right after session creation.
func (s *InterviewSession) FirstQuestion() models.Question {
	return s.questions[0]
}

// Progress is safe to call at any time, including mid-submission.
func (s *InterviewSession) Progress() models.SessionProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *InterviewSession) progressLocked() models.SessionProgress {
	return models.SessionProgress{
		SessionID:      s.sessionID,
		Status:         s.status,
		CurrentIndex:   s.currentIndex,
		TotalQuestions: len(s.questions),
	}
}

// Expired reports whether the deadline plus a retention window has passed;
// the registry reaper uses it.
func (s *InterviewSession) Expired(now time.Time, retention time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !now.Before(s.deadline.Add(retention))
}

// SubmitResponse processes one answer: deadline check, concurrent fan-out to
// the three analyzers, record append, cursor advance. A failed analyzer
// yields a degraded record; only a terminal session status is an error. The
// deadline is checked before any analysis — if it has passed, the session
// flips to timed_out and no adapter is invoked. If the deadline passes while
// the adapters are already running, the response is still recorded and the
// next call observes timed_out.
func (s *InterviewSession) SubmitResponse(ctx context.Context, responseText string, media []byte) (*models.ProcessingResult, error) {
	const op = "InterviewSession.SubmitResponse"

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.status.Terminal() {
		s.mu.Unlock()
		return nil, utils.E(utils.CodeConflict, op, "session is not active", utils.ErrSessionInactive)
	}
	if !s.now().Before(s.deadline) {
		s.status = models.StatusTimedOut
		result := &models.ProcessingResult{
			Status:   models.ProcessingTimedOut,
			Progress: s.progressLocked(),
		}
		s.mu.Unlock()
		s.log.WithField("session_id", s.sessionID).Info("session timed out")
		return result, nil
	}
	question := s.questions[s.currentIndex]
	resume := s.resume
	s.mu.Unlock()

	record := s.analyze(ctx, question, resume, responseText, media)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses = append(s.responses, record)
	s.currentIndex++

	result := &models.ProcessingResult{
		Status: models.ProcessingOK,
		Record: &record,
	}
	if s.currentIndex == len(s.questions) {
		s.status = models.StatusComplete
		result.Status = models.ProcessingComplete
	} else {
		next := s.questions[s.currentIndex]
		result.NextQuestion = &next
	}
	result.Progress = s.progressLocked()

	s.log.WithFields(logrus.Fields{
		"session_id":    s.sessionID,
		"current_index": s.currentIndex,
		"status":        s.status,
	}).Info("response recorded")

	return result, nil
}

// analyze fans out to the three adapters concurrently and joins. The face
// and voice analyzers never error by contract; an evaluator failure degrades
// to the default evaluation so one outage cannot block the interview.
func (s *InterviewSession) analyze(ctx context.Context, question models.Question, resume *models.ResumeData, responseText string, media []byte) models.ResponseRecord {
	var (
		faceMetrics  models.FaceMetrics
		voiceMetrics models.VoiceMetrics
		evaluation   models.Evaluation
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
		defer cancel()
		faceMetrics = s.face.Analyze(cctx, media)
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
		defer cancel()
		voiceMetrics = s.voice.Analyze(cctx, media)
	}()

	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
		defer cancel()
		ev, err := s.evaluator.EvaluateResponse(cctx, responseText, question, resume)
		if err != nil {
			s.log.WithError(err).WithField("session_id", s.sessionID).Warn("evaluation degraded")
			ev = models.DefaultEvaluation(err.Error())
		}
		evaluation = ev
	}()

	wg.Wait()

	return models.ResponseRecord{
		Question:     question,
		ResponseText: responseText,
		FaceMetrics:  faceMetrics,
		VoiceMetrics: voiceMetrics,
		Evaluation:   evaluation,
		SubmittedAt:  s.now(),
	}
}

// End closes the session and returns the aggregated summary. It is
// idempotent: the summary is computed once and cached. With force=false an
// interview with zero recorded responses is refused; force=true returns a
// summary with all-default aggregates instead.
func (s *InterviewSession) End(force bool) (*models.SessionSummary, error) {
	const op = "InterviewSession.End"

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary != nil {
		return s.summary, nil
	}

	if len(s.responses) == 0 && !force {
		return nil, utils.E(utils.CodeConflict, op, "no responses recorded", utils.ErrEmptySession)
	}

	s.status = models.StatusComplete

	endedAt := s.now()
	dur := int64(endedAt.Sub(s.createdAt).Seconds())
	if dur < 0 {
		dur = 0
	}

	responses := make([]models.ResponseRecord, len(s.responses))
	copy(responses, s.responses)

	s.summary = &models.SessionSummary{
		SessionID:         s.sessionID,
		Status:            s.status,
		TotalQuestions:    len(s.questions),
		QuestionsAnswered: len(responses),
		DurationSeconds:   dur,
		FaceMetrics:       meanScores(faceScoreSets(responses)),
		VoiceMetrics:      meanScores(voiceScoreSets(responses)),
		Evaluation:        summarizeEvaluations(evaluations(responses)),
		Responses:         responses,
		EndedAt:           endedAt,
	}

	s.log.WithFields(logrus.Fields{
		"session_id":         s.sessionID,
		"questions_answered": len(responses),
		"duration_seconds":   dur,
	}).Info("session ended")

	return s.summary, nil
}
