package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/colorgrid/internal/report"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name      string
		in        Config
		expected  *Config
		errSubstr string
	}{
		{
			name:     "defaults",
			in:       Config{ScenePath: "scene.hcl"},
			expected: &Config{ScenePath: "scene.hcl", OutputFormat: report.FormatText, WorkerCount: 1},
		},
		{
			name:     "explicit values kept",
			in:       Config{ScenePath: "s", OutputFormat: report.FormatYAML, WorkerCount: 8, Watch: true},
			expected: &Config{ScenePath: "s", OutputFormat: report.FormatYAML, WorkerCount: 8, Watch: true},
		},
		{name: "missing scene", in: Config{}, errSubstr: "ScenePath is a required"},
		{name: "bad format", in: Config{ScenePath: "s", OutputFormat: "xml"}, errSubstr: "invalid report format"},
		{name: "bad port", in: Config{ScenePath: "s", HealthcheckPort: 70000}, errSubstr: "HealthcheckPort"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.in)
			if tc.errSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errSubstr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}
