package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		pageStr      string
		limitStr     string
		defaultLimit int
		expected     Params
	}{
		{
			name:         "both provided",
			pageStr:      "3",
			limitStr:     "20",
			defaultLimit: 5,
			expected:     Params{Page: 3, Limit: 20},
		},
		{
			name:         "missing values fall back to defaults",
			pageStr:      "",
			limitStr:     "",
			defaultLimit: 5,
			expected:     Params{Page: 1, Limit: 5},
		},
		{
			name:         "non-numeric values fall back to defaults",
			pageStr:      "abc",
			limitStr:     "x",
			defaultLimit: 10,
			expected:     Params{Page: 1, Limit: 10},
		},
		{
			name:         "non-positive values fall back to defaults",
			pageStr:      "0",
			limitStr:     "-3",
			defaultLimit: 10,
			expected:     Params{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromQuery(tt.pageStr, tt.limitStr, tt.defaultLimit))
		})
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 5}.Skip())
	assert.Equal(t, 10, Params{Page: 3, Limit: 5}.Skip())
}

func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name               string
		total              int64
		params             Params
		expectedTotalPages int
	}{
		{name: "exact multiple", total: 10, params: Params{Page: 1, Limit: 5}, expectedTotalPages: 2},
		{name: "partial last page", total: 11, params: Params{Page: 1, Limit: 5}, expectedTotalPages: 3},
		{name: "empty collection", total: 0, params: Params{Page: 1, Limit: 5}, expectedTotalPages: 0},
		{name: "single record", total: 1, params: Params{Page: 1, Limit: 5}, expectedTotalPages: 1},
		{name: "zero limit yields zero pages", total: 10, params: Params{Page: 1, Limit: 0}, expectedTotalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvelope(nil, tt.total, tt.params)
			assert.Equal(t, tt.total, env.Total)
			assert.Equal(t, tt.params.Page, env.Page)
			assert.Equal(t, tt.expectedTotalPages, env.TotalPages)
		})
	}
}
