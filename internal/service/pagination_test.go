package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		skip    int
		limit   int
		want    Page
		badLocs [][]string
	}{
		{name: "defaults", skip: DefaultSkip, limit: DefaultLimit, want: Page{Skip: 0, Limit: 10}},
		{name: "within bounds", skip: 30, limit: 50, want: Page{Skip: 30, Limit: 50}},
		{name: "limit at max", skip: 0, limit: 100, want: Page{Skip: 0, Limit: 100}},
		{name: "limit clamped", skip: 0, limit: 1000, want: Page{Skip: 0, Limit: 100}},
		{name: "negative skip", skip: -1, limit: 10, badLocs: [][]string{{"query", "skip"}}},
		{name: "limit below min", skip: 0, limit: 5, badLocs: [][]string{{"query", "limit"}}},
		{name: "both invalid", skip: -5, limit: 0, badLocs: [][]string{{"query", "skip"}, {"query", "limit"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewPagination(tt.skip, tt.limit)
			if tt.badLocs == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, page)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			locs := make([][]string, 0, len(verr.Errors))
			for _, fe := range verr.Errors {
				locs = append(locs, fe.Loc)
				assert.Equal(t, "value_error.number.not_ge", fe.Type)
			}
			assert.Equal(t, tt.badLocs, locs)
		})
	}
}

func TestPagination_Page(t *testing.T) {
	page, err := Pagination{Skip: 2, Limit: 500}.Page()
	require.NoError(t, err)
	assert.Equal(t, Page{Skip: 2, Limit: MaxLimit}, page)
}

func TestValidationError_Error(t *testing.T) {
	_, err := NewPagination(-1, 10)
	require.Error(t, err)
	assert.Equal(t, "validation failed: query.skip: ensure this value is greater than or equal to 0", err.Error())
	assert.True(t, IsValidation(err))
}
