package textextract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("report.pdf"))
	assert.True(t, Supported("REPORT.PDF"))
	assert.True(t, Supported("notes.docx"))
	assert.True(t, Supported("readme.txt"))
	assert.False(t, Supported("image.png"))
	assert.False(t, Supported("archive"))
}

func TestExtract_TXT(t *testing.T) {
	text, err := Extract([]byte("  hello world \n"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := Extract([]byte("x"), "photo.jpeg")
	assert.Error(t, err)
}

func TestExtract_MalformedPDF(t *testing.T) {
	_, err := Extract([]byte("not a pdf at all"), "broken.pdf")
	assert.Error(t, err)
}

func TestExtract_DOCX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:t>first paragraph</w:t></w:p><w:p><w:t>second</w:t></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := Extract(buf.Bytes(), "doc.docx")
	require.NoError(t, err)
	assert.Contains(t, text, "first paragraph")
	assert.Contains(t, text, "second")
}

func TestExtract_MalformedDOCX(t *testing.T) {
	_, err := Extract([]byte("definitely not a zip"), "doc.docx")
	assert.Error(t, err)
}
