package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		limit int
		want  string
	}{
		{
			name:  "strips tags",
			html:  "<p>Install <strong>cameras</strong> properly.</p>",
			limit: 200,
			want:  "Install cameras properly.",
		},
		{
			name:  "block tags keep word boundaries",
			html:  "<p>First paragraph.</p><p>Second paragraph.</p>",
			limit: 200,
			want:  "First paragraph. Second paragraph.",
		},
		{
			name:  "truncates with ellipsis",
			html:  "<p>abcdefghij</p>",
			limit: 5,
			want:  "abcde...",
		},
		{
			name:  "empty input",
			html:  "",
			limit: 200,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeExcerpt(tt.html, tt.limit))
		})
	}
}
