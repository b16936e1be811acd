package genome

// ForkManager owns a fixed-size pool of replication forks and the advance
// speed shared by all of them. The number of attached forks never exceeds
// the pool size, and the pool size never changes over a cell's lifetime.
type ForkManager struct {
	forks []*ReplicationFork
	speed int
}

// NewForkManager allocates a pool of totalForks detached forks advancing
// speed bases per step.
func NewForkManager(totalForks int, speed int) *ForkManager {
	forks := make([]*ReplicationFork, totalForks)
	for i := range forks {
		forks[i] = NewReplicationFork()
	}
	return &ForkManager{forks: forks, speed: speed}
}

// Speed returns the configured bases-per-step advance rate.
func (m *ForkManager) Speed() int { return m.speed }

// PoolSize returns the fixed number of fork slots.
func (m *ForkManager) PoolSize() int { return len(m.forks) }

// FreeForks returns the count of currently detached forks.
func (m *ForkManager) FreeForks() int {
	free := 0
	for _, f := range m.forks {
		if !f.IsAttached() {
			free++
		}
	}
	return free
}

// AttachedForks returns the subset of the pool currently attached.
func (m *ForkManager) AttachedForks() []*ReplicationFork {
	attached := make([]*ReplicationFork, 0, len(m.forks))
	for _, f := range m.forks {
		if f.IsAttached() {
			attached = append(attached, f)
		}
	}
	return attached
}

// AttachFork finds the first detached, resettable fork in the pool and
// attaches it at location in direction, starting at time. It returns
// ErrExhaustedPool if no fork is free.
func (m *ForkManager) AttachFork(location *GenomicLocation, direction Direction, time int) (*ReplicationFork, error) {
	for _, f := range m.forks {
		if f.IsAttached() || f.GetJustDetached() {
			continue
		}
		if err := f.Attach(location, direction, time); err != nil {
			continue
		}
		return f, nil
	}
	return nil, ErrExhaustedPool
}

// AdvanceAttachedForks advances every currently attached fork by the
// manager's configured speed. A fork that hits a collision or its
// chromosome's end detaches itself (Advance sets justDetached); the
// manager immediately acknowledges that by calling Detach, returning the
// fork to the pool for a future Attach rather than leaving it stranded in
// the justDetached state for the rest of the run.
func (m *ForkManager) AdvanceAttachedForks(time int) error {
	for _, f := range m.forks {
		if !f.IsAttached() {
			continue
		}
		if _, err := f.Advance(m.speed, time); err != nil {
			return err
		}
		if f.GetJustDetached() {
			f.Detach()
		}
	}
	return nil
}

// CheckReplicationTranscriptionConflicts detaches every attached fork whose
// current base lies inside one of its chromosome's transcription regions,
// and returns the number of forks detached this way.
//
// The region model carries no independent activity schedule of its own,
// so every region counts as active at every step. The phase time mod period
// is computed but neither gates the check nor is returned or logged.
func (m *ForkManager) CheckReplicationTranscriptionConflicts(time int, period int) int {
	phase := time % period
	_ = phase
	conflicts := 0

	for _, f := range m.forks {
		if !f.IsAttached() {
			continue
		}
		chrm := f.GetChromosome()
		base := f.GetBase()
		for _, region := range chrm.TranscriptionRegions() {
			if region.Contains(base) {
				f.Detach()
				conflicts++
				break
			}
		}
	}

	return conflicts
}
