package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonfront/internal/domain"
	"carbonfront/internal/service"
)

// multipartOverhead is the slack allowed on top of the file limit for the
// other form fields and part headers.
const multipartOverhead = 1 << 20

// readUpload caps the request body, then opens the "file" form field. The
// returned close func must be called once the input has been consumed.
func readUpload(c *gin.Context, maxBytes int64) (service.UploadInput, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.UploadInput{}, nil, &domain.SizeLimitError{Size: tooLarge.Limit + 1, Limit: maxBytes}
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return service.UploadInput{}, nil, domain.ErrNoFileSelected
		}
		return service.UploadInput{}, nil, err
	}
	return openUpload(fh, c.PostForm("methodology"))
}

func openUpload(fh *multipart.FileHeader, methodology string) (service.UploadInput, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadInput{}, nil, err
	}
	return service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		File:        f,
		Methodology: methodology,
	}, func() { _ = f.Close() }, nil
}

// attachment sends body as a file download.
func attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
