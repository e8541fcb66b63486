package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carbonfront/internal/config"
	"carbonfront/internal/domain"
	"carbonfront/internal/service"
	"carbonfront/internal/session"
)

// SingleHandler serves the JSON API of the single-document workflow.
type SingleHandler struct {
	single  service.SingleService
	upload  *config.UploadConfig
	nowFunc func() time.Time
}

// NewSingleHandler creates a new SingleHandler.
func NewSingleHandler(single service.SingleService, upload *config.UploadConfig) *SingleHandler {
	return &SingleHandler{single: single, upload: upload, nowFunc: time.Now}
}

// Submit handles POST /api/v1/single
// @Summary Process a single PDF
// @Description Upload a PDF (max 50MB) with a methodology; returns the normalized rows and the column registry
// @Tags single
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to process"
// @Param methodology formData string false "spend or activity" default(spend)
// @Success 200 {object} Response{data=SingleStateResponse} "Processed"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid file"
// @Failure 409 {object} ErrorResponseBody "Submission already in progress"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Unusable response shape"
// @Failure 502 {object} ErrorResponseBody "Processing service error"
// @Router /api/v1/single [post]
func (h *SingleHandler) Submit(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	input, closeFn, err := readUpload(c, h.upload.MaxPDFBytes())
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
	if err := service.ValidatePDF(input, h.upload.MaxPDFBytes()); err != nil {
		HandleError(c, err)
		return
	}

	ticket, err := sess.BeginSingle(methodology, domain.FileInfo{Name: input.Filename, Size: input.Size})
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.single.Process(c.Request.Context(), input)
	if err != nil {
		sess.FinishSingle(ticket, nil, ErrorMessage(err))
		HandleError(c, err)
		return
	}
	sess.FinishSingle(ticket, result, "")

	h.respondState(c, sess)
}

// Get handles GET /api/v1/single
// @Summary Get single-document state
// @Tags single
// @Produce json
// @Success 200 {object} Response{data=SingleStateResponse} "Current state"
// @Router /api/v1/single [get]
func (h *SingleHandler) Get(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	h.respondState(c, sess)
}

// UpdateColumn handles PATCH /api/v1/single/columns/:key
// @Summary Update one column
// @Description Toggle inclusion and/or set the display name of a column
// @Tags single
// @Accept json
// @Produce json
// @Param key path string true "Original column key"
// @Param body body UpdateColumnRequest true "Fields to change"
// @Success 200 {object} Response{data=SingleStateResponse} "Updated state"
// @Failure 400 {object} ErrorResponseBody "Invalid body"
// @Failure 404 {object} ErrorResponseBody "Unknown column"
// @Router /api/v1/single/columns/{key} [patch]
func (h *SingleHandler) UpdateColumn(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	key := c.Param("key")
	err := sess.WithSingle(func(st *session.SingleState) error {
		if !st.HasResult() {
			return domain.ErrNoData
		}
		if req.Included != nil {
			if err := st.Registry.SetIncluded(key, *req.Included); err != nil {
				return err
			}
		}
		if req.DisplayName != nil {
			if err := st.Registry.Rename(key, *req.DisplayName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respondState(c, sess)
}

// SetAllColumns handles POST /api/v1/single/columns/all
// @Summary Select or deselect every column
// @Tags single
// @Accept json
// @Produce json
// @Param body body SetAllColumnsRequest true "Inclusion flag"
// @Success 200 {object} Response{data=SingleStateResponse} "Updated state"
// @Failure 400 {object} ErrorResponseBody "Invalid body or no data"
// @Router /api/v1/single/columns/all [post]
func (h *SingleHandler) SetAllColumns(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req SetAllColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	err := sess.WithSingle(func(st *session.SingleState) error {
		if !st.HasResult() {
			return domain.ErrNoData
		}
		st.Registry.SetAll(*req.Included)
		return nil
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	h.respondState(c, sess)
}

// Export handles GET /api/v1/single/export
// @Summary Download the curated rows
// @Tags single
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "No columns selected, no data, or bad format"
// @Router /api/v1/single/export [get]
func (h *SingleHandler) Export(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var art *domain.ExportArtifact
	err = sess.WithSingle(func(st *session.SingleState) error {
		var renderErr error
		art, renderErr = service.RenderExport(service.ExportInput{
			Rows:        st.Rows,
			Registry:    st.Registry,
			Methodology: st.Methodology,
			Format:      format,
		}, h.nowFunc())
		return renderErr
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	attachment(c, art.Filename, art.ContentType, art.Body)
}

// Reset handles DELETE /api/v1/single
// @Summary Reset the single-document state
// @Tags single
// @Produce json
// @Success 200 {object} Response{data=SingleStateResponse} "Fresh state"
// @Failure 409 {object} ErrorResponseBody "Submission in progress"
// @Router /api/v1/single [delete]
func (h *SingleHandler) Reset(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if err := sess.ResetSingle(); err != nil {
		HandleError(c, err)
		return
	}
	h.respondState(c, sess)
}

func (h *SingleHandler) respondState(c *gin.Context, sess *session.Session) {
	var resp SingleStateResponse
	_ = sess.WithSingle(func(st *session.SingleState) error {
		resp = newSingleStateResponse(st)
		return nil
	})
	RespondOK(c, resp)
}
