package page

import (
	"errors"
	"net/http"

	"viewtech-backend/internal/shared/utils"
)

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrDuplicateSlug = errors.New("slug already exists")
	ErrInvalidTitle  = errors.New("title must contain at least one alphanumeric character")
	ErrInvalidStatus = errors.New("status must be draft or published")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug), errors.Is(err, utils.ErrSlugExhausted):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
