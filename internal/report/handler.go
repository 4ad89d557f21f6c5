package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Octopus30/health-analysis/internal/ocr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts a multipart diagnostic report and stores it for
// processing.
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("report_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_file is required"})
		return
	}
	defer file.Close()

	rep, err := h.service.UploadReport(c.Request.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, ErrUnsupportedMediaType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         rep.ID,
		"object_key": rep.ObjectKey,
		"status":     rep.Status,
		"message":    "Report uploaded. Use /extract or /analyze to process it.",
	})
}

// Extract runs structured extraction and returns the flattened rows.
// Blocks for the duration of the OCR job and model calls.
func (h *Handler) Extract(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	table, rep, err := h.service.Extract(c.Request.Context(), id)
	if err != nil {
		c.JSON(pipelineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           rep.ID,
		"status":       rep.Status,
		"row_count":    len(table.Rows),
		"rows":         table.Rows,
		"result_key":   rep.ResultKey,
		"patient_name": rep.PatientName,
		"test_date":    rep.TestDate,
	})
}

// Analyze returns a narrative markdown summary of the report.
func (h *Handler) Analyze(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), id)
	if err != nil {
		c.JSON(pipelineStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"analysis": analysis,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	rep, err := h.service.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

func (h *Handler) GetStatus(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	rep, err := h.service.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     rep.ID,
		"status": rep.Status,
		"error":  rep.ErrorDetail,
	})
}

// DownloadResult streams the stored result CSV.
func (h *Handler) DownloadResult(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	data, err := h.service.DownloadResult(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handler) reportID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return 0, false
	}
	return id, true
}

// pipelineStatus maps document-level pipeline failures to HTTP codes.
func pipelineStatus(err error) int {
	var jobErr *ocr.JobError
	switch {
	case errors.As(err, &jobErr):
		return http.StatusBadGateway
	case errors.Is(err, ocr.ErrTimedOut):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
