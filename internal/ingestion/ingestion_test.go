package ingestion

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "Line with multiple spaces", CleanText("  Line \t   with multiple    spaces  "))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	assert.Equal(t, "Line 1\n\nLine 2", CleanText("Line 1\n\n\n\n\nLine 2"))
}

func TestCleanText_NormalizesBullets(t *testing.T) {
	result := CleanText("• Built APIs\n*  Led team\n- Wrote tests")
	assert.Equal(t, "- Built APIs\n- Led team\n- Wrote tests", result)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText(" \n\t\n "))
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatOf("Resume.PDF"))
	assert.Equal(t, FormatDOCX, FormatOf("cv.docx"))
	assert.Equal(t, FormatHTML, FormatOf("posting.htm"))
	assert.Equal(t, Format(""), FormatOf("resume.doc"))
	assert.Equal(t, Format(""), FormatOf("noext"))
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		max      int64
		wantErr  string
	}{
		{"valid pdf", "cv.pdf", []byte("%PDF-1.7 ..."), 0, ""},
		{"valid text", "cv.txt", []byte("hello"), 0, ""},
		{"unsupported", "cv.exe", []byte("MZ"), 0, "unsupported file format"},
		{"empty", "cv.txt", nil, 0, "file is empty"},
		{"too large", "cv.txt", []byte("123456"), 5, "file too large"},
		{"fake pdf", "cv.pdf", []byte("<html>"), 0, "invalid PDF file signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.data, tt.max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateUpload_ErrorTypes(t *testing.T) {
	var formatErr *UnsupportedFormatError
	assert.ErrorAs(t, ValidateUpload("cv.rtf", []byte("x"), 0), &formatErr)

	var uploadErr *UploadError
	assert.ErrorAs(t, ValidateUpload("cv.pdf", []byte("nope"), 0), &uploadErr)
	assert.Equal(t, "cv.pdf", uploadErr.Filename)
}

func TestValidateUpload_DefaultLimit(t *testing.T) {
	big := bytes.Repeat([]byte("a"), DefaultMaxUploadBytes+1)
	assert.Error(t, ValidateUpload("cv.txt", big, 0))
	assert.NoError(t, ValidateUpload("cv.txt", big[:DefaultMaxUploadBytes], 0))
}

func TestExtractText_PlainAndMarkdown(t *testing.T) {
	text, err := ExtractText([]byte("\xef\xbb\xbfSkills\r\nPython,   Go"), "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Skills\nPython, Go", text)

	text, err = ExtractText([]byte("# Experience\n\n\n\n- Built APIs"), "cv.md")
	require.NoError(t, err)
	assert.Equal(t, "# Experience\n\n- Built APIs", text)
}

func TestExtractText_HTML(t *testing.T) {
	doc := `<html><body><nav>Menu</nav><main><h1>Backend Engineer</h1><ul><li>Python</li><li>Docker</li></ul></main></body></html>`

	text, err := ExtractText([]byte(doc), "posting.html")
	require.NoError(t, err)
	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "- Python")
	assert.NotContains(t, text, "Menu")
}

func TestExtractText_DOCX(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Experience</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Built APIs with Go &amp; Python</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	text, err := ExtractText(data, "cv.docx")
	require.NoError(t, err)
	assert.Equal(t, "Experience\nBuilt APIs with Go & Python", text)
}

func TestExtractText_CorruptDocuments(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.docx"} {
		_, err := ExtractText([]byte("%PDF-garbage"), name)
		var uploadErr *UploadError
		assert.ErrorAs(t, err, &uploadErr, name)
	}
}

func TestExtractText_EmptyResult(t *testing.T) {
	_, err := ExtractText([]byte("   \n  "), "cv.txt")
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, err.Error(), "could not extract text")
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText([]byte("data"), "cv.odt")
	var formatErr *UnsupportedFormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), ".docx")
}

func TestIngestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Skills\nGo, Python"), 0644))

	text, meta, err := IngestFromFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Skills\nGo, Python", text)
	assert.Equal(t, "resume.txt", meta.Filename)
	assert.Equal(t, FormatText, meta.Format)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, 17, meta.Chars)
}

func TestIngestFromFile_NotFound(t *testing.T) {
	_, _, err := IngestFromFile(filepath.Join(t.TempDir(), "missing.txt"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestMetadata_HashDiffers(t *testing.T) {
	a := NewMetadata("one", "")
	b := NewMetadata("two", "")
	assert.NotEqual(t, a.Hash, b.Hash)

	js, err := a.ToJSON()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(js), `"hash"`))
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml":   documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
