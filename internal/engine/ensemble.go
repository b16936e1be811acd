package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/redymo/internal/config"
	"github.com/kraklabs/redymo/internal/metrics"
	"github.com/kraklabs/redymo/internal/provider"
)

// Progress is an optional sink for per-cell completion notifications, so a
// caller (the CLI) can drive a progress bar without the ensemble driver
// needing to know anything about terminals.
type Progress interface {
	Add(delta int) error
}

// RunEnsemble spawns cfg.Cells independent CellCycle instances and joins
// all of them before returning. Each cell gets its own private Genome
// built fresh from p (so its strand and landscape copy never cross a
// thread boundary), while p's transcription regions and constitutive
// origins stay shared read-only across every cell. Work is drawn from a
// shared queue of cell indices by cfg.Threads workers via errgroup.
func RunEnsemble(ctx context.Context, cfg config.Config, p provider.Provider, reg *metrics.Registry, progress Progress, logger zerolog.Logger) ([]CellResult, error) {
	results := make([]CellResult, cfg.Cells)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Threads)

	for i := 0; i < cfg.Cells; i++ {
		cellIndex := i
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			g, err := provider.BuildGenome(p)
			if err != nil {
				return fmt.Errorf("ensemble: cell %d: building genome: %w", cellIndex, err)
			}

			cell := NewCellCycle(cellIndex, g, cfg, logger).WithMetrics(reg)

			timer := reg.StartCellTimer()
			result := cell.Run()
			timer.ObserveDuration()

			for _, chrmResult := range result.Chromosomes {
				reg.ObserveOriginsFired(cellIndex, chrmResult.NFiredOrigins)
			}
			reg.CellsCompleted.Inc()

			results[cellIndex] = result

			if progress != nil {
				if err := progress.Add(1); err != nil {
					logger.Warn().Err(err).Msg("progress bar update failed")
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
