package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"carbonfront/internal/domain"
)

// newUpstreamError builds an UpstreamError from a non-success response,
// preferring the JSON "detail" field, then "message", then the status line.
func newUpstreamError(resp *http.Response, body []byte) *domain.UpstreamError {
	return &domain.UpstreamError{
		StatusCode: resp.StatusCode,
		Message:    upstreamMessage(resp.Status, resp.StatusCode, body),
	}
}

func upstreamMessage(status string, code int, body []byte) string {
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		for _, field := range []string{"detail", "message"} {
			if msg := messageText(root.Get(field)); msg != "" {
				return msg
			}
		}
	}
	if status == "" {
		status = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}
	return "Server error: " + status
}

// messageText renders a string field as-is and structured fields (e.g. a
// list of validation errors) as compact JSON.
func messageText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.JSON:
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(r.Raw)); err != nil {
			return r.Raw
		}
		return buf.String()
	case gjson.Number:
		if r.Num != 0 {
			return r.Raw
		}
	case gjson.True:
		return r.Raw
	}
	return ""
}

// FilenameFromDisposition extracts the filename parameter of a
// Content-Disposition header, with quotes removed. Returns "" when absent.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if fn := strings.TrimSpace(params["filename"]); fn != "" {
			return fn
		}
	}
	_, after, found := strings.Cut(header, "filename=")
	if !found {
		return ""
	}
	if i := strings.Index(after, ";"); i >= 0 {
		after = after[:i]
	}
	return strings.TrimSpace(strings.ReplaceAll(after, `"`, ""))
}

// ParseCountHeader parses the leading integer of a header value. Missing,
// malformed or out-of-range values yield 0.
func ParseCountHeader(val string) int {
	s := strings.TrimSpace(val)
	end := 0
	if end < len(s) && (s[0] == '-' || s[0] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
