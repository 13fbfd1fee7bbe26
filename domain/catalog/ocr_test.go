package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenOCR(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
		{
			name:     "plain text passes through",
			raw:      "already flat",
			expected: "already flat",
		},
		{
			name:     "array of text objects",
			raw:      `[{"text":"라면"},{"text":"辛口"}]`,
			expected: "라면 | 辛口",
		},
		{
			name:     "array with extra keys",
			raw:      `[{"text":"hot","conf":0.92},{"text":"spicy","box":[1,2,3,4]}]`,
			expected: "hot | spicy",
		},
		{
			name:     "array of bare strings",
			raw:      `["one","two"]`,
			expected: "one | two",
		},
		{
			name:     "mixed array skips textless objects",
			raw:      `[{"text":"keep"},{"conf":0.5},"tail"]`,
			expected: "keep | tail",
		},
		{
			name:     "single object",
			raw:      `{"text":"solo"}`,
			expected: "solo",
		},
		{
			name:     "object without text",
			raw:      `{"conf":0.1}`,
			expected: "",
		},
		{
			name:     "malformed json passes through",
			raw:      `[{"text":"broken"`,
			expected: `[{"text":"broken"`,
		},
		{
			name:     "whitespace only",
			raw:      "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlattenOCR(tt.raw))
		})
	}
}
