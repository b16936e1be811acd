package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/redymo/internal/engine"
)

func TestWriteCellResults_SamplesStrandEveryStep(t *testing.T) {
	strand := make([]int, CHRMOutputStep*3+1)
	for i := range strand {
		strand[i] = i
	}
	results := []engine.CellResult{
		{
			CellIndex: 0,
			Chromosomes: []engine.ChromosomeResult{
				{Code: "chrI", Strand: strand},
			},
		},
	}

	dir := t.TempDir()
	require.NoError(t, WriteCellResults(dir, results))

	contents, err := os.ReadFile(filepath.Join(dir, "cell_0", "chrI.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0\n100\n200\n300\n", string(contents))
}

func TestPrintSummaryTable_NonTTYIsPlain(t *testing.T) {
	results := []engine.CellResult{
		{
			CellIndex: 0,
			Chromosomes: []engine.ChromosomeResult{
				{Code: "chrI", NReplicatedBases: 300, NFiredOrigins: 2},
			},
		},
	}

	var buf bytes.Buffer
	PrintSummaryTable(&buf, results)

	assert.Contains(t, buf.String(), "chrI")
	assert.Contains(t, buf.String(), "300")
	assert.NotContains(t, buf.String(), "\x1b[", "non-tty output must carry no color escape codes")
}
