package dateparse

import (
	"testing"
	"time"

	"github.com/notaflow/notaflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseAt(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	p := NewParser()

	tests := []struct {
		name           string
		input          string
		wantDate       time.Time
		wantConfidence model.Confidence
		wantValid      bool
		wantFallback   bool // ParsedDate should equal now
	}{
		{
			name:           "full datetime slash format",
			input:          "10/06/2024 14:30:45",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 10, 14, 30, 45, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "datetime without seconds",
			input:          "10/06/2024 14:30",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 10, 14, 30, 0, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "date only",
			input:          "12/06/2024",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "dash separated datetime",
			input:          "10-06-2024 08:15:00",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 10, 8, 15, 0, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "iso style datetime",
			input:          "2024-06-10 14:30:00",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 10, 14, 30, 0, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "single digit day and month",
			input:          "1/6/2024",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "surrounding whitespace is tolerated",
			input:          "  12/06/2024  ",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local),
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "impossible calendar date falls back to now",
			input:          "31/02/2024",
			wantValid:      false,
			wantConfidence: model.ConfidenceLow,
			wantFallback:   true,
		},
		{
			name:           "too old falls back to now",
			input:          "15/03/2019",
			wantValid:      false,
			wantConfidence: model.ConfidenceLow,
			wantFallback:   true,
		},
		{
			name:           "far future falls back to now",
			input:          "25/06/2030",
			wantValid:      false,
			wantConfidence: model.ConfidenceLow,
			wantFallback:   true,
		},
		{
			name:           "empty input",
			input:          "",
			wantValid:      false,
			wantConfidence: model.ConfidenceLow,
			wantFallback:   true,
		},
		{
			name:           "garbage input",
			input:          "not a date at all",
			wantValid:      false,
			wantConfidence: model.ConfidenceLow,
			wantFallback:   true,
		},
		{
			name:           "rfc3339 handled by generic fallback",
			input:          "2024-06-10T14:30:00",
			wantValid:      true,
			wantDate:       time.Date(2024, time.June, 10, 14, 30, 0, 0, time.Local),
			wantConfidence: model.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.ParseAt(tt.input, now)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.wantConfidence, result.Confidence)
			assert.Equal(t, tt.input, result.OriginalString)

			if tt.wantFallback {
				assert.Equal(t, now, result.ParsedDate)
				assert.NotEmpty(t, result.Warnings)
			} else {
				assert.Equal(t, tt.wantDate, result.ParsedDate)
			}
		})
	}
}

func TestParser_ParseAt_RecencyConfidence(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	p := NewParser()

	tests := []struct {
		name           string
		input          string
		wantConfidence model.Confidence
		wantWarning    string
	}{
		{
			name:           "ten days ago is high confidence",
			input:          "05/06/2024 12:00:00",
			wantConfidence: model.ConfidenceHigh,
		},
		{
			name:           "thirty one days ago is medium confidence",
			input:          "15/05/2024 12:00:00",
			wantConfidence: model.ConfidenceMedium,
			wantWarning:    "Data com mais de 30 dias de diferença",
		},
		{
			name:           "over a year ago is medium confidence",
			input:          "10/05/2023 12:00:00",
			wantConfidence: model.ConfidenceMedium,
			wantWarning:    "Data com mais de 1 ano de diferença",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.ParseAt(tt.input, now)

			require.True(t, result.IsValid)
			assert.Equal(t, tt.wantConfidence, result.Confidence)
			if tt.wantWarning != "" {
				assert.Contains(t, result.Warnings, tt.wantWarning)
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

func TestParser_ParseAt_WarningTrail(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	p := NewParser()

	t.Run("too old mentions antiga", func(t *testing.T) {
		result := p.ParseAt("15/03/2019", now)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings, "Data muito antiga, pode estar incorreta")
	})

	t.Run("future mentions futuro", func(t *testing.T) {
		result := p.ParseAt("25/06/2030", now)
		assert.Contains(t, result.Warnings, "Data no futuro, pode estar incorreta")
	})

	t.Run("ambiguous future date resurfaces through the generic fallback", func(t *testing.T) {
		// Mirrors the mobile app: the day-first read is out of bounds, but
		// Date.parse-style month-first interpretation still yields a date.
		result := p.ParseAt("10/06/2030", now)
		assert.True(t, result.IsValid)
		assert.Equal(t, model.ConfidenceLow, result.Confidence)
		assert.Contains(t, result.Warnings, "Data no futuro, pode estar incorreta")
		assert.Contains(t, result.Warnings, "Usou interpretação genérica de data")
	})

	t.Run("rejected pattern warnings survive into the final result", func(t *testing.T) {
		result := p.ParseAt("31/02/2024", now)
		assert.Contains(t, result.Warnings, "Data resultante é inválida")
		assert.Contains(t, result.Warnings, "Não foi possível interpretar a data, usando data atual")
	})

	t.Run("generic fallback is flagged", func(t *testing.T) {
		result := p.ParseAt("2024-06-10T14:30:00", now)
		assert.Contains(t, result.Warnings, "Usou interpretação genérica de data")
	})

	t.Run("empty input warning", func(t *testing.T) {
		result := p.ParseAt("", now)
		assert.Equal(t, []string{"Data não fornecida ou inválida"}, result.Warnings)
	})
}

func TestParser_Parse_UsesWallClock(t *testing.T) {
	p := NewParser()
	before := time.Now()
	result := p.Parse("")
	after := time.Now()

	assert.False(t, result.IsValid)
	assert.False(t, result.ParsedDate.Before(before))
	assert.False(t, result.ParsedDate.After(after))
}

func TestParser_ParseAt_Deterministic(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	p := NewParser()

	first := p.ParseAt("10/06/2024 14:30:45", now)
	second := p.ParseAt("10/06/2024 14:30:45", now)
	assert.Equal(t, first, second)
}
