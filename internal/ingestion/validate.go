package ingestion

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxUploadBytes is the largest accepted upload
const DefaultMaxUploadBytes = 5 << 20

var pdfMagic = []byte("%PDF")

// ValidateUpload checks extension, size and, for PDFs, the file signature.
// maxBytes <= 0 selects DefaultMaxUploadBytes.
func ValidateUpload(filename string, data []byte, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	format := FormatOf(filename)
	if format == "" {
		return &UnsupportedFormatError{Filename: filename}
	}
	if len(data) == 0 {
		return &UploadError{Filename: filename, Message: "file is empty"}
	}
	if int64(len(data)) > maxBytes {
		return &UploadError{
			Filename: filename,
			Message:  fmt.Sprintf("file too large (%d bytes, limit %d)", len(data), maxBytes),
		}
	}
	if format == FormatPDF && !bytes.HasPrefix(data, pdfMagic) {
		return &UploadError{Filename: filename, Message: "invalid PDF file signature"}
	}
	return nil
}

func allowedList() string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
