package genome

// Direction is the signed stride a fork walks its chromosome by.
type Direction int

const (
	// Forward extends toward increasing base indices.
	Forward Direction = 1
	// Backward extends toward decreasing base indices.
	Backward Direction = -1
)

// ReplicationFork is a single directional extender. It starts Detached;
// Attach moves it to Attached, repeated Advance calls push it forward until
// it hits a collision or the chromosome end and detaches itself, and an
// explicit Detach releases it back to the pool without marking
// justDetached.
type ReplicationFork struct {
	attached     bool
	chromosome   *Chromosome
	base         int
	direction    Direction
	attachTime   int
	justDetached bool
}

// NewReplicationFork returns a fork in the initial Detached state.
func NewReplicationFork() *ReplicationFork {
	return &ReplicationFork{}
}

// Attach moves the fork to Attached at loc, walking in direction from time
// onward. It fails with ErrAlreadyAttached if the fork is already attached,
// or if it was left justDetached by an advance and has not been reset by an
// explicit Detach.
func (f *ReplicationFork) Attach(loc *GenomicLocation, direction Direction, time int) error {
	if f.attached || f.justDetached {
		return ErrAlreadyAttached
	}
	f.attached = true
	f.chromosome = loc.Chromosome()
	f.base = loc.Base()
	f.direction = direction
	f.attachTime = time
	return nil
}

// Detach explicitly releases the fork. It does not set justDetached --
// that flag is reserved for the implicit detach an Advance performs on
// collision or chromosome end.
func (f *ReplicationFork) Detach() {
	f.attached = false
	f.chromosome = nil
	f.base = 0
	f.direction = 0
	f.justDetached = false
}

// Advance moves the fork forward by speed bases, replicating
// [base, base+direction*speed] with time. If the chromosome reports a
// non-normal replication (collision or chromosome-end clamp), the fork
// detaches and sets justDetached; otherwise its base moves to
// base + direction*speed. Advance returns true when it actually moved a
// detached-or-attached fork forward (i.e. the fork was attached when
// called).
func (f *ReplicationFork) Advance(speed int, time int) (bool, error) {
	if !f.attached {
		return false, nil
	}

	end := f.base + int(f.direction)*speed
	normal, err := f.chromosome.Replicate(f.base, end, time)
	if err != nil {
		return false, err
	}

	if !normal {
		f.attached = false
		f.chromosome = nil
		f.direction = 0
		f.justDetached = true
		f.base = -1
		return true, nil
	}

	f.base = end
	return true, nil
}

// IsAttached reports whether the fork currently holds a chromosome.
func (f *ReplicationFork) IsAttached() bool { return f.attached }

// GetBase returns the fork's current base, or -1 when detached.
func (f *ReplicationFork) GetBase() int {
	if !f.attached {
		return -1
	}
	return f.base
}

// GetDirection returns the fork's direction, or 0 when detached.
func (f *ReplicationFork) GetDirection() Direction {
	if !f.attached {
		return 0
	}
	return f.direction
}

// GetChromosome returns the fork's chromosome, or nil when detached.
func (f *ReplicationFork) GetChromosome() *Chromosome {
	if !f.attached {
		return nil
	}
	return f.chromosome
}

// GetJustDetached reports whether the fork's most recent state change was
// an implicit detach during Advance, rather than an explicit Detach.
func (f *ReplicationFork) GetJustDetached() bool { return f.justDetached }

// AttachTime returns the time at which the fork was last attached.
func (f *ReplicationFork) AttachTime() int { return f.attachTime }
