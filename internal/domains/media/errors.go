package media

import (
	"errors"
	"net/http"
)

var (
	ErrMediaNotFound = errors.New("media not found")
	ErrInvalidFile   = errors.New("invalid file")
	ErrFileTooLarge  = errors.New("file exceeds the maximum allowed size")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMediaNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidFile), errors.Is(err, ErrFileTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
