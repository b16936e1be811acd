// Package output renders a finished ensemble's per-cell results to disk,
// following the original model's textual strand sampling.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kraklabs/redymo/internal/engine"
)

// CHRMOutputStep is the implementation-defined sampling stride preserved
// from the original tool: only every CHRMOutputStep'th base of a
// chromosome's strand is written out, one integer per line.
const CHRMOutputStep = 100

// WriteCellResults writes one file per chromosome per cell under dir, at
// dir/cell_<index>/<code>.txt, sampling the strand every CHRMOutputStep
// bases.
func WriteCellResults(dir string, results []engine.CellResult) error {
	for _, result := range results {
		cellDir := filepath.Join(dir, fmt.Sprintf("cell_%d", result.CellIndex))
		if err := os.MkdirAll(cellDir, 0o755); err != nil {
			return fmt.Errorf("output: creating %s: %w", cellDir, err)
		}

		for _, chrm := range result.Chromosomes {
			if err := writeChromosomeStrand(filepath.Join(cellDir, chrm.Code+".txt"), chrm.Strand); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeChromosomeStrand(path string, strand []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for base := 0; base < len(strand); base += CHRMOutputStep {
		if _, err := w.WriteString(strconv.Itoa(strand[base])); err != nil {
			return fmt.Errorf("output: writing %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("output: writing %s: %w", path, err)
		}
	}
	return w.Flush()
}
