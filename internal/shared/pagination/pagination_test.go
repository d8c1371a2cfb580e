package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	p, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Limit)
	assert.False(t, p.Bounded())
	assert.Equal(t, 0, p.Offset())
}

func TestParseValid(t *testing.T) {
	p, err := Parse("2", "10")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 10, p.Offset())
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		limit   string
		wantErr error
	}{
		{"page zero", "0", "10", ErrInvalidPage},
		{"negative page", "-1", "10", ErrInvalidPage},
		{"non-numeric page", "abc", "10", ErrInvalidPage},
		{"float page", "1.5", "10", ErrInvalidPage},
		{"negative limit", "1", "-5", ErrInvalidLimit},
		{"non-numeric limit", "1", "many", ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.page, tt.limit)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 2, Params{Page: 2, Limit: 2}.Offset())
	assert.Equal(t, 40, Params{Page: 5, Limit: 10}.Offset())
	// unbounded requests always start at the beginning
	assert.Equal(t, 0, Params{Page: 7, Limit: 0}.Offset())
}

func TestNewEnvelopeBounded(t *testing.T) {
	// five published projects, two per page, second page holds items 3-4
	env := NewEnvelope(Params{Page: 2, Limit: 2}, 5)

	assert.Equal(t, 5, env.Total)
	assert.Equal(t, 2, env.Page)
	assert.Equal(t, 2, env.PageSize)
	assert.Equal(t, 3, env.TotalPages)
}

func TestNewEnvelopeExactDivision(t *testing.T) {
	env := NewEnvelope(Params{Page: 1, Limit: 5}, 10)
	assert.Equal(t, 2, env.TotalPages)
}

func TestNewEnvelopeUnbounded(t *testing.T) {
	env := NewEnvelope(Params{Page: 1}, 42)

	assert.Equal(t, 42, env.Total)
	assert.Equal(t, 42, env.PageSize)
	assert.Equal(t, 1, env.TotalPages)
}

func TestNewEnvelopeEmptyResult(t *testing.T) {
	env := NewEnvelope(Params{Page: 1, Limit: 10}, 0)

	assert.Equal(t, 0, env.Total)
	assert.Equal(t, 1, env.TotalPages)
}
