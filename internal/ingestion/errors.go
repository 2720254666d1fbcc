package ingestion

import "fmt"

// UnsupportedFormatError is returned for files whose extension has no extractor
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (allowed: %s)", e.Filename, allowedList())
}

// UploadError represents a rejected or unreadable upload
type UploadError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("upload %s: %s", e.Filename, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}
