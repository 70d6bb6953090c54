package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/services"
	"github.com/yoockh/yoointerview/internal/utils"
)

const maxMediaBytes = 50 << 20

type InterviewHandler struct {
	registry *services.SessionRegistry
	parser   services.ResumeParserService
	media    services.MediaService
}

func NewInterviewHandler(registry *services.SessionRegistry, parser services.ResumeParserService, media services.MediaService) *InterviewHandler {
	return &InterviewHandler{registry: registry, parser: parser, media: media}
}

type startResponse struct {
	SessionID      string             `json:"session_id"`
	FirstQuestion  models.Question    `json:"first_question"`
	TotalQuestions int                `json:"total_questions"`
	Resume         *models.ResumeData `json:"resume"`
}

// Start parses the uploaded resume, generates the question sequence and
// registers a new session for the caller.
func (h *InterviewHandler) Start(c *gin.Context) {
	const op = "InterviewHandler.Start"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	content, fileName, err := readResumeUpload(c, op)
	if err != nil {
		writeError(c, err)
		return
	}

	resume, err := h.parser.Extract(content)
	if err != nil {
		writeError(c, err)
		return
	}

	var duration time.Duration
	if v := c.PostForm("duration_minutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 || minutes > 180 {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "duration_minutes must be between 1 and 180", err))
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}

	sess, err := h.registry.Create(c.Request.Context(), userID, resume, duration)
	if err != nil {
		writeError(c, err)
		return
	}

	h.media.Archive(c.Request.Context(), "resume", sess.ID(), fileName, "application/octet-stream", bytes.NewReader(content))

	c.JSON(http.StatusOK, startResponse{
		SessionID:      sess.ID(),
		FirstQuestion:  sess.FirstQuestion(),
		TotalQuestions: sess.Progress().TotalQuestions,
		Resume:         resume,
	})
}

// Submit records one answer: the transcribed (or typed) text plus an
// optional media recording for face and voice analysis.
func (h *InterviewHandler) Submit(c *gin.Context) {
	const op = "InterviewHandler.Submit"

	sess, ok := h.ownedSession(c, op)
	if !ok {
		return
	}

	responseText := c.PostForm("response_text")
	if responseText == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "response_text is required", nil))
		return
	}

	media, fileName, err := readMediaUpload(c, op)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := sess.SubmitResponse(c.Request.Context(), responseText, media)
	if err != nil {
		writeError(c, err)
		return
	}

	if len(media) > 0 {
		h.media.Archive(c.Request.Context(), "response", sess.ID(), fileName, "application/octet-stream", bytes.NewReader(media))
	}

	c.JSON(http.StatusOK, result)
}

// Status reports where the session stands without mutating it.
func (h *InterviewHandler) Status(c *gin.Context) {
	sess, ok := h.ownedSession(c, "InterviewHandler.Status")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Progress())
}

// End closes the session and returns the aggregate summary. With
// ?force=true an empty session still closes (summary carries zeroed
// aggregates); without it, ending before any answer is an error.
func (h *InterviewHandler) End(c *gin.Context) {
	sess, ok := h.ownedSession(c, "InterviewHandler.End")
	if !ok {
		return
	}

	force := c.Query("force") == "true" || c.PostForm("force") == "true"

	summary, err := sess.End(force)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Stats is the admin view of the registry.
func (h *InterviewHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"active_sessions": h.registry.Len()})
}

func (h *InterviewHandler) ownedSession(c *gin.Context, op string) (*services.InterviewSession, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}

	sess, err := h.registry.Get(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if sess.OwnerID() != userID {
		writeError(c, utils.E(utils.CodeForbidden, op, "session belongs to another user", nil))
		return nil, false
	}
	return sess, true
}

func readMediaUpload(c *gin.Context, op string) ([]byte, string, error) {
	fh, err := c.FormFile("media")
	if err != nil {
		// media is optional; analysis degrades without it
		return nil, "", nil
	}
	if fh.Size > maxMediaBytes {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "media too large (max 50MB)", nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to open media upload", err)
	}
	defer file.Close()

	media, err := io.ReadAll(io.LimitReader(file, maxMediaBytes+1))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to read media upload", err)
	}
	if len(media) > maxMediaBytes {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "media too large (max 50MB)", nil)
	}
	return media, fh.Filename, nil
}
