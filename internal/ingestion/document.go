package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/matchly/internal/fetch"
)

// Format is a supported document format
type Format string

// Supported formats
const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

var extensions = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".txt":  FormatText,
	".md":   FormatMarkdown,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// FormatOf returns the format implied by a file name's extension, or "" when unsupported
func FormatOf(filename string) Format {
	return extensions[strings.ToLower(filepath.Ext(filename))]
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// ExtractText converts a document into cleaned plain text, choosing the
// extractor by file extension. A document that yields no text is an *UploadError.
func ExtractText(data []byte, filename string) (string, error) {
	var raw string
	var err error

	switch FormatOf(filename) {
	case FormatPDF:
		raw, err = pdfText(data)
	case FormatDOCX:
		raw, err = docxText(data)
	case FormatText, FormatMarkdown:
		raw = string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	case FormatHTML:
		raw, err = HTMLToText(string(data))
	default:
		return "", &UnsupportedFormatError{Filename: filename}
	}
	if err != nil {
		return "", &UploadError{Filename: filename, Message: "could not extract text", Cause: err}
	}

	text := CleanText(raw)
	if text == "" {
		return "", &UploadError{Filename: filename, Message: "could not extract text"}
	}
	return text, nil
}

// HTMLToText reduces an HTML document to its main readable text
func HTMLToText(doc string) (string, error) {
	return fetch.ExtractMainText(doc, fetch.JobPostingSelectors())
}

// pdfText extracts plain text from a PDF. The reader panics on some malformed
// inputs, so panics are converted into errors.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// docxText reads word/document.xml and keeps only its text runs, one paragraph per line
func docxText(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()
	return docxXMLToText(r.Editable().GetContent()), nil
}

func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if tag == "<w:tab/>" {
			return " "
		}
		return "\n"
	})
	return html.UnescapeString(xmlTag.ReplaceAllString(content, ""))
}
