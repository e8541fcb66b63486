package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbonfront/internal/config"
	"carbonfront/internal/csvexport"
	"carbonfront/internal/domain"
	"carbonfront/internal/service"
	"carbonfront/internal/session"
)

// PageHandler serves the server-rendered workflow pages.
type PageHandler struct {
	tmpl    *template.Template
	intro   template.HTML
	help    template.HTML
	single  service.SingleService
	bulk    service.BulkService
	upload  *config.UploadConfig
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(
	tmpl *template.Template,
	intro, help template.HTML,
	single service.SingleService,
	bulk service.BulkService,
	upload *config.UploadConfig,
	logger *zap.Logger,
) *PageHandler {
	return &PageHandler{
		tmpl:    tmpl,
		intro:   intro,
		help:    help,
		single:  single,
		bulk:    bulk,
		upload:  upload,
		logger:  logger.Named("pages"),
		nowFunc: time.Now,
	}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, "index.html", pageData{Title: "Home", Intro: h.intro})
}

// SinglePage handles GET /pdf-processor
func (h *PageHandler) SinglePage(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var view singleView
	_ = sess.WithSingle(func(st *session.SingleState) error {
		view = newSingleView(st)
		return nil
	})
	h.render(c, "pdf_processor.html", pageData{
		Title:   "Single PDF Processing",
		MaxSize: domain.FormatFileSize(h.upload.MaxPDFBytes()),
		State:   view,
	})
}

// SubmitSingle handles POST /pdf-processor
func (h *PageHandler) SubmitSingle(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	defer h.redirect(c, "/pdf-processor")

	input, closeFn, err := readUpload(c, h.upload.MaxPDFBytes())
	if err != nil {
		h.singleError(sess, err)
		return
	}
	defer closeFn()

	methodology, err := domain.ParseMethodology(input.Methodology)
	if err == nil {
		err = service.ValidatePDF(input, h.upload.MaxPDFBytes())
	}
	if err != nil {
		h.singleError(sess, err)
		return
	}

	ticket, err := sess.BeginSingle(methodology, domain.FileInfo{Name: input.Filename, Size: input.Size})
	if err != nil {
		h.singleError(sess, err)
		return
	}

	result, err := h.single.Process(c.Request.Context(), input)
	failure := ""
	if err != nil {
		failure = ErrorMessage(err)
	}
	if !sess.FinishSingle(ticket, result, failure) {
		h.logger.Debug("discarding stale single result", zap.String("session", sess.ID))
	}
}

// UpdateColumns handles POST /pdf-processor/columns
func (h *PageHandler) UpdateColumns(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	defer h.redirect(c, "/pdf-processor")

	action := c.DefaultPostForm("action", "apply")
	_ = sess.WithSingle(func(st *session.SingleState) error {
		if !st.HasResult() {
			st.Error = domain.ErrNoData.Error()
			return nil
		}
		st.Error = ""
		switch action {
		case "select_all":
			st.Registry.SetAll(true)
		case "deselect_all":
			st.Registry.SetAll(false)
		default:
			for i, col := range st.Registry.Columns() {
				idx := strconv.Itoa(i)
				_ = st.Registry.SetIncluded(col.Key, c.PostForm("include_"+idx) != "")
				// disabled inputs are not submitted, so absent keeps the old name
				if name, present := c.GetPostForm("display_name_" + idx); present {
					_ = st.Registry.Rename(col.Key, name)
				}
			}
		}
		return nil
	})
}

// DownloadSingle handles GET /pdf-processor/download
func (h *PageHandler) DownloadSingle(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var art *domain.ExportArtifact
	err := sess.WithSingle(func(st *session.SingleState) error {
		format, err := domain.ParseExportFormat(c.Query("format"))
		if err == nil {
			art, err = service.RenderExport(service.ExportInput{
				Rows:        st.Rows,
				Registry:    st.Registry,
				Methodology: st.Methodology,
				Format:      format,
			}, h.nowFunc())
		}
		if err != nil {
			st.Error = ErrorMessage(err)
		}
		return err
	})
	if err != nil {
		h.redirect(c, "/pdf-processor")
		return
	}
	attachment(c, art.Filename, art.ContentType, art.Body)
}

// ResetSingle handles POST /pdf-processor/reset
func (h *PageHandler) ResetSingle(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if err := sess.ResetSingle(); err != nil {
		h.singleError(sess, err)
	}
	h.redirect(c, "/pdf-processor")
}

// BulkPage handles GET /bulk-processing
func (h *PageHandler) BulkPage(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var view bulkView
	_ = sess.WithBulk(func(st *session.BulkState) error {
		view = newBulkView(st)
		return nil
	})
	h.render(c, "bulk_processing.html", pageData{
		Title:   "Bulk Processing",
		Help:    h.help,
		MaxSize: domain.FormatFileSize(h.upload.MaxZIPBytes()),
		State:   view,
	})
}

// SubmitBulk handles POST /bulk-processing
func (h *PageHandler) SubmitBulk(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	defer h.redirect(c, "/bulk-processing")

	input, closeFn, err := readUpload(c, h.upload.MaxZIPBytes())
	if err != nil {
		h.bulkError(sess, err)
		return
	}
	defer closeFn()

	methodology, err := domain.ParseMethodology(input.Methodology)
	if err == nil {
		err = service.ValidateZIP(input, h.upload.MaxZIPBytes())
	}
	if err != nil {
		h.bulkError(sess, err)
		return
	}

	ticket, err := sess.BeginBulk(methodology, domain.FileInfo{Name: input.Filename, Size: input.Size})
	if err != nil {
		h.bulkError(sess, err)
		return
	}

	result, err := h.bulk.Process(c.Request.Context(), input)
	failure := ""
	if err != nil {
		failure = ErrorMessage(err)
	}
	if !sess.FinishBulk(ticket, result, failure) {
		h.logger.Debug("discarding stale bulk result", zap.String("session", sess.ID))
	}
}

// DownloadBulk handles GET /bulk-processing/download. The held result is
// released once served.
func (h *PageHandler) DownloadBulk(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	res, err := sess.TakeBulkResult()
	if err != nil {
		h.bulkError(sess, err)
		h.redirect(c, "/bulk-processing")
		return
	}
	name := csvexport.SanitizeDownloadName(res.Filename, csvexport.BulkFallbackFilename(res.ReceivedAt))
	attachment(c, name, res.ContentType, res.Body)
}

// ResetBulk handles POST /bulk-processing/reset
func (h *PageHandler) ResetBulk(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if err := sess.ResetBulk(); err != nil {
		h.bulkError(sess, err)
	}
	h.redirect(c, "/bulk-processing")
}

func (h *PageHandler) singleError(sess *session.Session, err error) {
	_ = sess.WithSingle(func(st *session.SingleState) error {
		st.Error = ErrorMessage(err)
		return nil
	})
}

func (h *PageHandler) bulkError(sess *session.Session, err error) {
	_ = sess.WithBulk(func(st *session.BulkState) error {
		st.Error = ErrorMessage(err)
		return nil
	})
}

func (h *PageHandler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// render executes a template into a buffer first so a failing template
// never leaves a half-written page.
func (h *PageHandler) render(c *gin.Context, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "template rendering failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
