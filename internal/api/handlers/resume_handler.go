package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/yoointerview/internal/services"
	"github.com/yoockh/yoointerview/internal/utils"
)

const maxResumeBytes = 10 << 20

type ResumeHandler struct {
	parser services.ResumeParserService
	media  services.MediaService
}

func NewResumeHandler(parser services.ResumeParserService, media services.MediaService) *ResumeHandler {
	return &ResumeHandler{parser: parser, media: media}
}

// Upload parses a resume file and returns the extracted structured data
// without starting a session. Useful for letting the client preview what
// the interviewer will see.
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	content, fileName, err := readResumeUpload(c, "ResumeHandler.Upload")
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := h.parser.Extract(content)
	if err != nil {
		writeError(c, err)
		return
	}

	h.media.Archive(c.Request.Context(), "resume", userID, fileName, "application/octet-stream", bytes.NewReader(content))

	c.JSON(http.StatusOK, data)
}

// readResumeUpload pulls the 'resume' multipart field into memory. Resumes
// are small documents; buffering keeps the parser interface simple.
func readResumeUpload(c *gin.Context, op string) ([]byte, string, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'resume'", err)
	}
	if fh.Size <= 0 || fh.Size > maxResumeBytes {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "resume must be between 1 byte and 10MB", nil)
	}

	ext := strings.ToLower(fh.Filename)
	if !strings.HasSuffix(ext, ".pdf") && !strings.HasSuffix(ext, ".docx") && !strings.HasSuffix(ext, ".txt") {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "resume must be .pdf, .docx or .txt", nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to read upload", err)
	}
	if len(content) > maxResumeBytes {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "resume too large (max 10MB)", nil)
	}
	return content, fh.Filename, nil
}
