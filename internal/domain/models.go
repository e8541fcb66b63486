package domain

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Submission is a single upload forwarded to the processing service.
type Submission struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Methodology Methodology
}

// FileInfo describes the file currently selected on a page.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// BulkStats are informational counters read from bulk response headers.
type BulkStats struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// BulkResult is the file returned by the bulk endpoint, passed through as-is.
type BulkResult struct {
	Filename    string
	ContentType string
	Body        []byte
	Stats       BulkStats
	ReceivedAt  time.Time
}

// IsZIPName reports whether a filename carries the .zip suffix.
func IsZIPName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zip")
}

// ExportArtifact is a rendered download, built on demand and never stored.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with binary units and at most two
// decimals, e.g. 1536 -> "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
