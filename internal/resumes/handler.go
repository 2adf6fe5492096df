package resumes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/capability"
	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

// Handler exposes the pipeline over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler builds the HTTP handler for resume routes.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the resume endpoints onto the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.Analyze)
	rg.GET("/resumes", h.List)
	rg.GET("/resumes/:id", h.Get)
	rg.GET("/resumes/:id/file", h.File)
	rg.GET("/resumes/:id/image", h.Image)
}

// Analyze accepts a multipart submission and runs the pipeline to
// completion before responding.
func (h *Handler) Analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read upload", nil)
		return
	}
	defer file.Close()

	record, err := h.svc.Analyze(c.Request.Context(), AnalyzeInput{
		UserID:         userID,
		FileName:       fileHeader.Filename,
		File:           file,
		CompanyName:    strings.TrimSpace(c.PostForm("company-name")),
		JobTitle:       strings.TrimSpace(c.PostForm("job-title")),
		JobDescription: strings.TrimSpace(c.PostForm("job-description")),
		Signals:        signalsFromRequest(c),
	})
	if record.ID != "" {
		c.Set("resumeId", record.ID)
	}
	if err != nil {
		h.respondPipelineError(c, record, err)
		return
	}

	respond.JSON(c, http.StatusCreated, record)
}

func signalsFromRequest(c *gin.Context) capability.Signals {
	width := 0
	raw := strings.TrimSpace(c.PostForm("viewport-width"))
	if raw == "" {
		raw = strings.TrimSpace(c.GetHeader("X-Viewport-Width"))
	}
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			width = parsed
		}
	}
	return capability.Signals{
		UserAgent:     c.Request.UserAgent(),
		ViewportWidth: width,
	}
}

func (h *Handler) respondPipelineError(c *gin.Context, record ResumeRecord, err error) {
	var malformed *MalformedReportError
	switch {
	case errors.Is(err, ErrUploadFailed):
		respond.Error(c, http.StatusBadGateway, "upload_failed", "Error: Failed to upload file", nil)
	case errors.Is(err, ErrConversionFailed):
		respond.Error(c, http.StatusBadGateway, "conversion_failed", "Error: Failed to convert PDF to image", nil)
	case errors.As(err, &malformed):
		respond.Error(c, http.StatusBadGateway, "malformed_report", "Error: Failed to analyze resume", gin.H{
			"resumeId": record.ID,
			"field":    malformed.Field,
		})
	case errors.Is(err, ErrInferenceFailed):
		respond.Error(c, http.StatusBadGateway, "inference_failed", "Error: Failed to analyze resume", gin.H{
			"resumeId": record.ID,
		})
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}

// Get returns the stored record, feedback pending or populated.
func (h *Handler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		return
	}
	respond.OK(c, record)
}

// List returns the caller's records, newest first.
func (h *Handler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": records})
}

// File serves the original resume document.
func (h *Handler) File(c *gin.Context) {
	data, contentType, err := h.svc.OpenDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume file", nil)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// Image serves the preview image. Records written by constrained clients
// have none; that is a distinct 404 so callers can fall back cleanly.
func (h *Handler) Image(c *gin.Context) {
	data, contentType, err := h.svc.OpenImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPreview):
			respond.Error(c, http.StatusNotFound, "no_preview", "no preview image for this resume", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load preview image", nil)
		}
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
