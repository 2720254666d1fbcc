package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/matchly/internal/db"
	"github.com/jonathan/matchly/internal/fetch"
	"github.com/jonathan/matchly/internal/ingestion"
	"github.com/jonathan/matchly/internal/pipeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		uploadErr     *ingestion.UploadError
		formatErr     *ingestion.UnsupportedFormatError
		notFoundErr   *db.NotFoundError
		fetchErr      *fetch.Error
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &uploadErr), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrUnsupportedRole):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator errors into an *ErrValidation for the first failing field
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
