package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare array",
			input:    `[{"name":"A"}]`,
			expected: `[{"name":"A"}]`,
		},
		{
			name:     "json code fence",
			input:    "```json\n[{\"name\":\"A\"}]\n```",
			expected: `[{"name":"A"}]`,
		},
		{
			name:     "plain code fence",
			input:    "```\n[1,2]\n```",
			expected: `[1,2]`,
		},
		{
			name:     "surrounding prose",
			input:    "Here are the clinics you asked for:\n[{\"name\":\"A\"}]\nLet me know if you need more.",
			expected: `[{"name":"A"}]`,
		},
		{
			name:    "no array",
			input:   `{"name":"A"}`,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := extractJSONArray(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)
}
