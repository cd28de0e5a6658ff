package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name       string
		query      SearchQuery
		wantFields []string
	}{
		{name: "team only", query: SearchQuery{TeamName: "Lakers", GameDate: "2024-01-15"}},
		{name: "player only", query: SearchQuery{PlayerName: "LeBron James", GameDate: "2024-01-15"}},
		{name: "blank names", query: SearchQuery{PlayerName: "  ", TeamName: "\t", GameDate: "2024-01-15"}, wantFields: []string{"teamName"}},
		{name: "missing date", query: SearchQuery{TeamName: "Lakers"}, wantFields: []string{"gameDate"}},
		{name: "bad date", query: SearchQuery{TeamName: "Lakers", GameDate: "01/15/2024"}, wantFields: []string{"gameDate"}},
		{name: "nothing", query: SearchQuery{}, wantFields: []string{"teamName", "gameDate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			fields := verrs.Fields()
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "Monday, January 15, 2024", FormatDisplayDate("2024-01-15"))
	assert.Equal(t, "Sunday, March 3, 2024", FormatDisplayDate("2024-03-03"))
	assert.Equal(t, "not-a-date", FormatDisplayDate("not-a-date"))
}

func TestIsValidation(t *testing.T) {
	assert.False(t, IsValidation(errors.New("boom")))
	assert.True(t, IsValidation(&ValidationError{Field: "gameDate", Message: "x"}))
}
