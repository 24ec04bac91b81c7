package analyses

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/engine"
	"ats-backend/internal/extract"
	"ats-backend/internal/history"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/util"
)

const (
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxUploadBytes = 5 << 20
	multipartOverhead     = 64 << 10
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxBodyBytes   int64
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxBodyBytes: defaultMaxBodyBytes, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-resume", h.analyze)
	rg.POST("/resume-suggestions", h.suggestions)
	rg.POST("/review", h.review)
	rg.POST("/parse-file", h.parseFile)
}

type textRequest struct {
	ResumeText *string `json:"resumeText"`
}

type reviewRequest struct {
	ResumeText *string `json:"resumeText"`
	FileName   string  `json:"fileName"`
	Save       bool    `json:"save"`
}

func (h *Handler) analyze(c *gin.Context) {
	text, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.Svc.Analyze(c.Request.Context(), text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("overallScore", result.OverallScore)
	respond.OK(c, result)
}

func (h *Handler) suggestions(c *gin.Context) {
	text, ok := h.bindText(c)
	if !ok {
		return
	}
	items, err := h.Svc.Suggest(c.Request.Context(), text)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) review(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ResumeText == nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "resumeText is required", nil)
		return
	}

	out, err := h.Svc.Review(c.Request.Context(), middleware.OwnerIDFromContext(c), ReviewRequest{
		ResumeText: *req.ResumeText,
		FileName:   req.FileName,
		Save:       req.Save,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("overallScore", out.Analysis.OverallScore)
	if out.HistoryID != "" {
		c.Set("historyId", out.HistoryID)
	}
	respond.OK(c, out)
}

func (h *Handler) parseFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(c, ErrFileTooLarge)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "file is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		writeError(c, ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "unable to read file", nil)
		return
	}
	if int64(len(data)) > h.MaxUploadBytes {
		writeError(c, ErrFileTooLarge)
		return
	}

	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		name = history.DefaultFileName
	}
	parsed, err := h.Svc.ParseFile(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), name)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, parsed)
}

// bindText decodes {"resumeText": "..."} and rejects missing or non-string values.
func (h *Handler) bindText(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ResumeText == nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "resumeText is required", nil)
		return "", false
	}
	return *req.ResumeText, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidInput, "resumeText must be non-empty text", nil)
	case errors.Is(err, history.ErrMissingOwner):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "X-Guest-Id is required to save history", nil)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedMedia, "Only PDF, DOCX and plain text files are supported", nil)
	case errors.Is(err, extract.ErrUnreadable), errors.Is(err, ErrEmptyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeUnprocessable, err.Error(), nil)
	case errors.Is(err, ErrFileTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, err.Error(), nil)
	case errors.Is(err, engine.ErrAnalysisIntegrity):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeIntegrity, "Resume analysis failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "Internal server error", nil)
	}
}
