package web_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonfront/internal/web"
)

func TestTemplates_Parse(t *testing.T) {
	tmpl, err := web.Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "pdf_processor.html", "bulk_processing.html", "header", "footer", "methodology"} {
		assert.NotNil(t, tmpl.Lookup(name), "template %s", name)
	}
}

func TestTemplates_FileSizeHelper(t *testing.T) {
	tmpl, err := web.Templates()
	require.NoError(t, err)

	probe, err := tmpl.New("probe").Parse(`{{fileSize .}}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, probe.Execute(&buf, int64(1536)))
	assert.Equal(t, "1.5 KB", buf.String())
}

func TestMarkdown(t *testing.T) {
	out, err := web.Markdown("landing.md")
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(out), "<h2"))
	assert.Contains(t, string(out), "<strong>Single PDF processing</strong>")
}

func TestMarkdown_Missing(t *testing.T) {
	_, err := web.Markdown("nope.md")
	assert.Error(t, err)
}
