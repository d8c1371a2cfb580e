package utils

import (
	"regexp"

	"github.com/google/uuid"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID reports whether s looks like a canonical lowercase UUID. Used to
// decide whether a path identifier is an id or a slug.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}
