package taxonomy

import (
	"errors"
	"net/http"

	"viewtech-backend/internal/shared/utils"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrDuplicateSlug    = errors.New("slug already exists")
	ErrInvalidName      = errors.New("name must contain at least one alphanumeric character")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrTagNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug), errors.Is(err, utils.ErrSlugExhausted):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
