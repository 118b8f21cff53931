package overlay

// NoWait disables deferred start.
const NoWait = -1

// State is the sequencing bookkeeping of a session. It changes only when
// snapshots are taken and fragments are written.
type State struct {
	// SnapshotCount is the index the next snapshot gets, it never decreases.
	SnapshotCount int
	// WaitThreshold is the first index actually emitted, NoWait when every
	// snapshot is emitted.
	WaitThreshold int
	// FragmentLowWater is the first snapshot index not yet referenced by a
	// fragment.
	FragmentLowWater int
	// FragmentCount numbers fragment files.
	FragmentCount int
}

// NewState returns state of a fresh session.
func NewState() State {
	return State{
		SnapshotCount:    1,
		WaitThreshold:    NoWait,
		FragmentLowWater: 1,
		FragmentCount:    1,
	}
}

// Skipping reports whether the next snapshot is only counted.
func (s *State) Skipping() bool {
	return s.WaitThreshold != NoWait && s.SnapshotCount < s.WaitThreshold
}

// Advance moves to the next snapshot index.
func (s *State) Advance() {
	s.SnapshotCount++
}

// FragmentRange returns inclusive range of snapshot indices the next fragment
// covers, empty when to < from.
func (s *State) FragmentRange() (from, to int) {
	return s.FragmentLowWater, s.SnapshotCount - 1
}

// FragmentWritten moves fragment bookkeeping past the current snapshot.
func (s *State) FragmentWritten() {
	s.FragmentLowWater = s.SnapshotCount
	s.FragmentCount++
}
