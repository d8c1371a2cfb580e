package message

import (
	"errors"
	"net/http"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidStatus   = errors.New("status must be unread, read or responded")
)

func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
