package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOrDefault(t *testing.T) {
	page := func(v int) *int { return &v }

	tests := []struct {
		name     string
		page     *int
		expected int
		err      error
	}{
		{name: "absent", page: nil, expected: 1},
		{name: "first", page: page(1), expected: 1},
		{name: "third", page: page(3), expected: 3},
		{name: "zero", page: page(0), err: ErrInvalidPage},
		{name: "negative", page: page(-2), err: ErrInvalidPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := MatchIdsQueryParams{Page: tt.page}
			got, err := q.PageOrDefault()
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
