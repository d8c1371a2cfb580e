package blog

import (
	"errors"
	"net/http"

	"viewtech-backend/internal/shared/utils"
)

var (
	ErrPostNotFound  = errors.New("blog post not found")
	ErrDuplicateSlug = errors.New("blog post slug already exists")
	ErrInvalidTitle  = errors.New("title must contain at least one alphanumeric character")
	ErrInvalidStatus = errors.New("status must be draft or published")
)

// GetHTTPStatusCode maps domain errors onto response codes. Anything
// unrecognized is a persistence/server error.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug), errors.Is(err, utils.ErrSlugExhausted):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
