// Package engine implements the per-cell discrete-time replication loop
// and the ensemble driver that fans it out across many independent cells.
package engine

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/kraklabs/redymo/internal/config"
	"github.com/kraklabs/redymo/internal/genome"
	"github.com/kraklabs/redymo/internal/metrics"
)

// CellCycle is one cell's private, single-threaded simulation: a time
// counter, a private Genome replica, a ForkManager over that genome, and a
// PRNG seeded deterministically from the cell index.
type CellCycle struct {
	cellIndex   int
	t           int
	genome      *genome.Genome
	forkManager *genome.ForkManager
	rng         *rand.Rand
	cfg         config.Config
	log         zerolog.Logger
	metrics     *metrics.Registry
}

// NewCellCycle builds a cell ready to run. g is expected to be this cell's
// own private Genome -- never shared with another cell. The cell's PRNG is
// seeded from cfg.Seed XOR cellIndex, so each cell in an ensemble draws an
// independent but reproducible random sequence.
func NewCellCycle(cellIndex int, g *genome.Genome, cfg config.Config, logger zerolog.Logger) *CellCycle {
	seed := cfg.Seed ^ uint64(cellIndex)
	cc := &CellCycle{
		cellIndex:   cellIndex,
		genome:      g,
		forkManager: genome.NewForkManager(cfg.Resources, cfg.Speed),
		rng:         rand.New(rand.NewSource(int64(seed))),
		cfg:         cfg,
		log:         logger.With().Int("cell", cellIndex).Logger(),
	}
	cc.initialize()
	return cc
}

// WithMetrics attaches a run-level metrics registry so the cell reports its
// attached-fork count into the ensemble's redymo_forks_attached gauge. Safe
// to leave unset; a nil registry is a no-op.
func (cc *CellCycle) WithMetrics(reg *metrics.Registry) *CellCycle {
	cc.metrics = reg
	return cc
}

func (cc *CellCycle) attachedForkCount() int {
	return cc.forkManager.PoolSize() - cc.forkManager.FreeForks()
}

// reportForkDelta adjusts the shared attached-fork gauge by how much this
// cell's own attached-fork count changed since before was sampled.
func (cc *CellCycle) reportForkDelta(before int) {
	if cc.metrics == nil {
		return
	}
	if delta := cc.attachedForkCount() - before; delta != 0 {
		cc.metrics.AdjustForksAttached(delta)
	}
}

// initialize applies the uniform-probability override and pre-fires
// constitutive origins at t=0.
func (cc *CellCycle) initialize() {
	if cc.cfg.Probability > 0 {
		for _, chrm := range cc.genome.Chromosomes() {
			chrm.OverrideUniformProbability(cc.cfg.Probability)
		}
	}

	if cc.cfg.Constitutive > 0 {
		cc.preFireConstitutiveOrigins(cc.cfg.Constitutive)
	}
}

type constitutiveCandidate struct {
	chrm   *genome.Chromosome
	origin genome.ConstitutiveOrigin
}

// preFireConstitutiveOrigins selects count constitutive origins at random
// across the whole genome and fires each one at t=0: it replicates the
// single base, attaches forks in both directions, and records the origin
// as fired on its chromosome.
func (cc *CellCycle) preFireConstitutiveOrigins(count int) {
	var candidates []constitutiveCandidate
	for _, chrm := range cc.genome.Chromosomes() {
		for _, origin := range chrm.ConstitutiveOrigins() {
			candidates = append(candidates, constitutiveCandidate{chrm: chrm, origin: origin})
		}
	}

	cc.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if count > len(candidates) {
		count = len(candidates)
	}

	for _, cand := range candidates[:count] {
		cc.fireOrigin(cand.chrm, cand.origin.Base, 0)
		cand.chrm.PutFiredConstitutiveOrigin(cand.origin)
	}
}

// fireOrigin marks base as fired at time on chrm: writes the timestamp,
// increments the fired-origin counter, attaches up to two forks (one per
// direction -- fewer if the pool is exhausted, since the origin still
// counts as fired even when no fork is available -- and applies the
// dormant-origin boost when enabled.
func (cc *CellCycle) fireOrigin(chrm *genome.Chromosome, base int, time int) {
	if _, err := chrm.Replicate(base, base, time); err != nil {
		cc.log.Error().Err(err).Str("chromosome", chrm.Code()).Int("base", base).Msg("failed to fire origin")
		return
	}
	chrm.AddFiredOrigin()

	for _, dir := range [...]genome.Direction{genome.Forward, genome.Backward} {
		loc, err := genome.NewGenomicLocation(base, chrm, cc.rng)
		if err != nil {
			cc.log.Error().Err(err).Msg("failed to build genomic location for firing origin")
			continue
		}
		if _, err := cc.forkManager.AttachFork(loc, dir, time); err != nil {
			// Pool exhausted: the origin still fired above, it just
			// could not claim a fork this time.
			continue
		}
	}

	if cc.cfg.Dormant {
		if err := chrm.SetDormantActivationProbability(base); err != nil {
			cc.log.Error().Err(err).Str("chromosome", chrm.Code()).Int("base", base).Msg("failed to apply dormant boost")
		}
	}
}

// Run drives the discrete-time loop until the genome is fully replicated,
// the configured timeout is reached, or the optional early-exit condition
// fires. Reaching the timeout and the early-exit condition both report
// TimedOut: a cell that can never fire another origin or advance another
// fork is, like a cell that exhausts its step budget, one that never
// finishes replicating -- the early exit is purely a performance shortcut
// for running the remaining steps out, not a distinct successful outcome.
func (cc *CellCycle) Run() CellResult {
	// Account for any forks preFireConstitutiveOrigins attached during
	// initialize(), before this cell's metrics registry (if any) was set.
	cc.reportForkDelta(0)

	for {
		if cc.genome.IsReplicated() {
			return cc.finalizeAndRelease(false)
		}
		if cc.t >= cc.cfg.Timeout {
			return cc.finalizeAndRelease(true)
		}
		if cc.canExitEarly() {
			return cc.finalizeAndRelease(true)
		}

		before := cc.attachedForkCount()
		cc.scanForOrigins()
		if err := cc.forkManager.AdvanceAttachedForks(cc.t); err != nil {
			cc.log.Error().Err(err).Msg("fork advance failed")
		}
		cc.forkManager.CheckReplicationTranscriptionConflicts(cc.t, cc.cfg.Period)
		cc.reportForkDelta(before)

		cc.t++
	}
}

// finalizeAndRelease builds the cell's result and, if a metrics registry is
// attached, releases this cell's remaining attached-fork contribution from
// the shared gauge -- the fork pool itself is cell-local and discarded once
// the cell finishes.
func (cc *CellCycle) finalizeAndRelease(timedOut bool) CellResult {
	if cc.metrics != nil {
		cc.metrics.AdjustForksAttached(-cc.attachedForkCount())
	}
	return cc.finalize(timedOut)
}

// scanForOrigins walks every chromosome in declaration order and every
// unreplicated base in ascending order, firing an origin wherever the
// per-step draw succeeds.
func (cc *CellCycle) scanForOrigins() {
	for _, chrm := range cc.genome.Chromosomes() {
		size := chrm.Size()
		for base := 0; base < size; base++ {
			replicated, err := chrm.BaseIsReplicated(base)
			if err != nil || replicated {
				continue
			}

			loc, err := genome.NewGenomicLocation(base, chrm, cc.rng)
			if err != nil {
				continue
			}
			fires, err := loc.WillActivate(cc.cfg.Dormant, cc.cfg.Period)
			if err != nil || !fires {
				continue
			}

			cc.fireOrigin(chrm, base, cc.t)
		}
	}
}

// canExitEarly reports the optional early-termination condition: no fork
// is attached, and every remaining unreplicated base has a zero firing
// probability, so nothing will ever happen again this cell.
func (cc *CellCycle) canExitEarly() bool {
	if cc.forkManager.FreeForks() != cc.forkManager.PoolSize() {
		return false
	}

	for _, chrm := range cc.genome.Chromosomes() {
		size := chrm.Size()
		for base := 0; base < size; base++ {
			replicated, err := chrm.BaseIsReplicated(base)
			if err != nil || replicated {
				continue
			}
			p, err := chrm.ActivationProbability(base)
			if err != nil || p != 0 {
				return false
			}
		}
	}

	return true
}

func (cc *CellCycle) finalize(timedOut bool) CellResult {
	result := CellResult{
		CellIndex: cc.cellIndex,
		StepsRun:  cc.t,
		TimedOut:  timedOut,
	}

	for _, chrm := range cc.genome.Chromosomes() {
		strand := make([]int, chrm.Size())
		copy(strand, chrm.Strand())

		result.Chromosomes = append(result.Chromosomes, ChromosomeResult{
			Code:                     chrm.Code(),
			Strand:                   strand,
			NReplicatedBases:         chrm.NReplicatedBases(),
			NFiredOrigins:            chrm.NFiredOrigins(),
			FiredConstitutiveOrigins: chrm.FiredConstitutiveOrigins(),
		})
	}

	return result
}
