package convert

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updateGolden = flag.Bool("update-golden", false, "update golden test files")

// TestGolden_ConvertDirectory converts testdata/src and compares every output
// page with testdata/golden.
func TestGolden_ConvertDirectory(t *testing.T) {
	dst := t.TempDir()
	c := newTestConverter(t, dst, nil)

	report, err := c.ConvertPath(context.Background(), filepath.Join("testdata", "src"))
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.Equal(t, 2, report.Count(OutcomeWritten))

	for _, fr := range report.Files {
		got, err := os.ReadFile(fr.Dest)
		require.NoError(t, err)

		goldenPath := filepath.Join("testdata", "golden", filepath.Base(fr.Dest))
		if *updateGolden {
			require.NoError(t, os.WriteFile(goldenPath, got, 0o644))
			continue
		}
		want, err := os.ReadFile(goldenPath)
		require.NoError(t, err, "missing golden file %s", goldenPath)
		assert.Equal(t, string(want), string(got), "output mismatch for %s", fr.Source)
	}
}
