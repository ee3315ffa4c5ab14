package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/colorgrid/internal/report"
)

// FindResult returns the reported result for plug, failing the test if the
// plug was not reported.
func FindResult(t *testing.T, result *HarnessResult, plug string) report.Result {
	t.Helper()
	for _, r := range result.Results {
		if r.Plug == plug {
			return r
		}
	}
	require.Failf(t, "plug not reported", "expected %q in report, got %d results", plug, len(result.Results))
	return report.Result{}
}

// AssertPlugValues checks the reported values of plug, in index order,
// within delta.
func AssertPlugValues(t *testing.T, result *HarnessResult, plug string, expected []float32, delta float64) {
	t.Helper()
	r := FindResult(t, result, plug)
	require.Len(t, r.Elements, len(expected), "plug %s", plug)
	for i, e := range r.Elements {
		assert.Equal(t, i, e.Index, "plug %s element %d index", plug, i)
		assert.InDelta(t, expected[i], e.Value, delta, "plug %s element %d", plug, i)
	}
}
