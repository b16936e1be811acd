package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/kraklabs/redymo/internal/engine"
)

// PrintSummaryTable renders a colorized per-cell summary table to w --
// total replicated bases and fired-origin count per chromosome, per cell.
// Color is only applied when w is an interactive terminal (mirrors the
// go-isatty gating used elsewhere in the reference pack); a non-tty
// destination (a pipe, a log file) gets the same table in plain text.
func PrintSummaryTable(w io.Writer, results []engine.CellResult) {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	header := color.New(color.FgCyan, color.Bold)
	if !useColor {
		header.DisableColor()
	}
	header.Fprintln(w, "cell  chromosome       replicated_bases  fired_origins")

	for _, result := range results {
		for _, chrm := range result.Chromosomes {
			line := fmt.Sprintf("%-5d %-16s %-17d %-13d", result.CellIndex, chrm.Code, chrm.NReplicatedBases, chrm.NFiredOrigins)
			if result.TimedOut {
				line += " (timed out)"
			}
			if useColor && result.TimedOut {
				color.New(color.FgYellow).Fprintln(w, line)
				continue
			}
			fmt.Fprintln(w, line)
		}
	}
}
