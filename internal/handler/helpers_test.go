package handler_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbonfront/internal/columns"
	"carbonfront/internal/config"
	"carbonfront/internal/middleware"
	"carbonfront/internal/rowset"
	"carbonfront/internal/service"
	"carbonfront/internal/session"
)

const cookieName = "cf_session"

func init() {
	gin.SetMode(gin.TestMode)
}

func testUploadConfig() *config.UploadConfig {
	return &config.UploadConfig{MaxPDFSizeMB: 50, MaxZIPSizeMB: 100}
}

// testEnv is a router with a pre-created session every request is bound to.
type testEnv struct {
	router *gin.Engine
	store  *session.Store
	sess   *session.Session
}

func newTestEnv(register func(r *gin.Engine)) *testEnv {
	store := session.NewStore(time.Hour, zap.NewNop())
	r := gin.New()
	r.Use(middleware.Session(store, cookieName, false))
	register(r)
	return &testEnv{router: r, store: store, sess: store.Create()}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: cookieName, Value: e.sess.ID})
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// uploadRequest builds a multipart request with a "file" part of the given
// media type plus extra form fields.
func uploadRequest(t *testing.T, target, filename, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, target, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// commaResult is a two-column result whose first value contains a comma.
func commaResult(t *testing.T) *service.SingleResult {
	t.Helper()
	rows, err := rowset.Parse([]byte(`[{"A":"x,y","B":"z"}]`))
	require.NoError(t, err)
	return &service.SingleResult{Shape: "array", Rows: rows, Registry: columns.NewRegistry(rows.Keys())}
}
