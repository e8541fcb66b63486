package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"carbonfront/internal/config"
	"carbonfront/internal/csvexport"
	"carbonfront/internal/domain"
	"carbonfront/internal/service"
)

// Bulk counter response headers.
const (
	HeaderProcessedCount = "X-Processed-Count"
	HeaderFailedCount    = "X-Failed-Count"
	HeaderTotalFiles     = "X-Total-Files"
)

// BulkHandler serves the JSON API of the bulk workflow.
type BulkHandler struct {
	bulk   service.BulkService
	upload *config.UploadConfig
}

// NewBulkHandler creates a new BulkHandler.
func NewBulkHandler(bulk service.BulkService, upload *config.UploadConfig) *BulkHandler {
	return &BulkHandler{bulk: bulk, upload: upload}
}

// Submit handles POST /api/v1/bulk
// @Summary Process a ZIP archive
// @Description Upload a ZIP of PDFs (max 100MB); the processing service's result file is returned as-is
// @Tags bulk
// @Accept multipart/form-data
// @Produce octet-stream
// @Param file formData file true "ZIP archive"
// @Param methodology formData string false "spend or activity" default(spend)
// @Success 200 {file} file "Result file with X-Processed-Count, X-Failed-Count and X-Total-Files headers"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid file"
// @Failure 409 {object} ErrorResponseBody "Submission already in progress"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 502 {object} ErrorResponseBody "Processing service error"
// @Router /api/v1/bulk [post]
func (h *BulkHandler) Submit(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	input, closeFn, err := readUpload(c, h.upload.MaxZIPBytes())
	if err != nil {
		HandleError(c, err)
		return
	}
	defer closeFn()

	methodology, err := domain.ParseMethodology(input.Methodology)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := service.ValidateZIP(input, h.upload.MaxZIPBytes()); err != nil {
		HandleError(c, err)
		return
	}

	ticket, err := sess.BeginBulk(methodology, domain.FileInfo{Name: input.Filename, Size: input.Size})
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.bulk.Process(c.Request.Context(), input)
	if err != nil {
		sess.FinishBulk(ticket, nil, ErrorMessage(err))
		HandleError(c, err)
		return
	}
	// served directly, so the held copy is released right away
	if sess.FinishBulk(ticket, result, "") {
		_, _ = sess.TakeBulkResult()
	}

	c.Header(HeaderProcessedCount, strconv.Itoa(result.Stats.Processed))
	c.Header(HeaderFailedCount, strconv.Itoa(result.Stats.Failed))
	c.Header(HeaderTotalFiles, strconv.Itoa(result.Stats.Total))
	name := csvexport.SanitizeDownloadName(result.Filename, csvexport.BulkFallbackFilename(result.ReceivedAt))
	attachment(c, name, result.ContentType, result.Body)
}
