package settings

import (
	"errors"
	"net/http"
)

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrInvalidKey      = errors.New("key must contain only letters, digits, dots, underscores and hyphens")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrSettingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
