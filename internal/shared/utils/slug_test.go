package utils

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation collapses", "Top 10 Security Tips!", "top-10-security-tips"},
		{"mixed separators", "CCTV -- Installation & Maintenance", "cctv-installation-maintenance"},
		{"leading and trailing junk", "  ***Secure Your Home***  ", "secure-your-home"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"uppercase", "UPPER", "upper"},
		{"digits survive", "24/7 Monitoring", "24-7-monitoring"},
		{"only symbols", "!!!***", ""},
		{"empty", "", ""},
		{"unicode stripped", "Ça va héhé", "a-va-h-h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlugDeterministic(t *testing.T) {
	first := GenerateSlug("Top 10 Security Tips!")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GenerateSlug("Top 10 Security Tips!"))
	}
}

func TestRandomSuffix(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-z]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := RandomSuffix()
		assert.Regexp(t, pattern, s)
		seen[s] = true
	}

	// 100 draws from 36^6 possibilities should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestUniqueSlugBaseFree(t *testing.T) {
	exists := func(ctx context.Context, slug string) (bool, error) {
		return false, nil
	}

	slug, err := UniqueSlug(context.Background(), "hello-world", exists)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", slug)
}

func TestUniqueSlugCollisionGetsSuffix(t *testing.T) {
	taken := map[string]bool{"hello-world": true}
	exists := func(ctx context.Context, slug string) (bool, error) {
		return taken[slug], nil
	}

	slug, err := UniqueSlug(context.Background(), "hello-world", exists)
	require.NoError(t, err)
	assert.NotEqual(t, "hello-world", slug)
	assert.Regexp(t, regexp.MustCompile(`^hello-world-[0-9a-z]{6}$`), slug)
}

func TestUniqueSlugExhausted(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, slug string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := UniqueSlug(context.Background(), "hello-world", exists)
	assert.ErrorIs(t, err, ErrSlugExhausted)
	// one base check plus five suffixed candidates
	assert.Equal(t, 6, calls)
}

func TestUniqueSlugPropagatesCheckError(t *testing.T) {
	boom := errors.New("connection reset")
	exists := func(ctx context.Context, slug string) (bool, error) {
		return false, boom
	}

	_, err := UniqueSlug(context.Background(), "hello-world", exists)
	assert.ErrorIs(t, err, boom)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("d9c0a31f-60ae-4f3a-9f6e-1b2c3d4e5f60"))
	assert.False(t, IsUUID("top-10-security-tips"))
	assert.False(t, IsUUID("D9C0A31F-60AE-4F3A-9F6E-1B2C3D4E5F60"))
	assert.False(t, IsUUID("d9c0a31f60ae4f3a9f6e1b2c3d4e5f60"))
	assert.False(t, IsUUID(""))
}
