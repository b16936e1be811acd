package engine

import "github.com/kraklabs/redymo/internal/genome"

// ChromosomeResult is one chromosome's finalized state at the end of a
// cell's run: its replication-time strand and its fired-origin counters.
type ChromosomeResult struct {
	Code                     string
	Strand                   []int
	NReplicatedBases         int
	NFiredOrigins            int
	FiredConstitutiveOrigins []genome.ConstitutiveOrigin
}

// CellResult is the outcome of one simulated cell.
type CellResult struct {
	CellIndex   int
	Chromosomes []ChromosomeResult
	StepsRun    int
	TimedOut    bool
}
