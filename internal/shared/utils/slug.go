package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
)

const (
	slugSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	slugSuffixLength   = 6
	maxSlugAttempts    = 5
)

// ErrSlugExhausted is returned when no free slug could be found within the
// attempt budget. Mapped to HTTP 409 by the domain error mappers.
var ErrSlugExhausted = errors.New("could not generate a unique slug")

// GenerateSlug derives a URL-safe identifier from a display string:
// lowercase, runs of non-alphanumeric characters collapsed to a single
// hyphen, no leading or trailing hyphen. Deterministic; an empty result
// means the input had no usable characters and must be rejected by the caller.
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))

	hyphenated := slugInvalidChars.ReplaceAllString(lower, "-")

	return strings.Trim(hyphenated, "-")
}

// RandomSuffix returns slugSuffixLength random characters from [0-9a-z].
func RandomSuffix() string {
	buf := make([]byte, slugSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	for i, b := range buf {
		buf[i] = slugSuffixAlphabet[int(b)%len(slugSuffixAlphabet)]
	}
	return string(buf)
}

// SlugExists reports whether a candidate slug is already taken. Update flows
// pass a check that excludes the entity's own row.
type SlugExists func(ctx context.Context, slug string) (bool, error)

// UniqueSlug resolves base against the store: the base slug is returned
// unchanged when free, otherwise a random suffix is appended and the new
// candidate is verified again, up to maxSlugAttempts times. Every candidate
// returned from here has been confirmed free at the time of the check; the
// database unique constraint on slug remains the last line of defense.
func UniqueSlug(ctx context.Context, base string, exists SlugExists) (string, error) {
	taken, err := exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := base + "-" + RandomSuffix()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrSlugExhausted
}
