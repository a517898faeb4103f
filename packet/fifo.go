package packet

import "errors"

// MaxBranchMap is the largest number of outcomes a branch map can hold,
// per the E-Trace branch payload's count field (spec.md §3 "Branch map").
const MaxBranchMap = 32

// ErrCannotAddBranches is returned when pushing an outcome would exceed
// MaxBranchMap entries.
var ErrCannotAddBranches = errors.New("packet: branch map overflow")

// BranchMap is an ordered FIFO of up to MaxBranchMap predicted-taken/
// not-taken outcomes. The oldest outcome is always at index 0 and is the
// first one Pop returns, matching the wire encoding's LSB-first, oldest-
// first ordering.
type BranchMap struct {
	bits  uint64
	count int
}

// Push appends an outcome (true = taken) as the newest entry.
func (m *BranchMap) Push(taken bool) error {
	if m.count >= MaxBranchMap {
		return ErrCannotAddBranches
	}
	if taken {
		m.bits |= 1 << uint(m.count)
	}
	m.count++
	return nil
}

// PushN loads count outcomes from bits (LSB = oldest, matching the wire
// layout) in a single call, as the packet decoder does after reading a
// Branch payload's map field.
func PushN(bits uint64, count int) (BranchMap, error) {
	if count < 0 || count > MaxBranchMap {
		return BranchMap{}, ErrCannotAddBranches
	}
	var mask uint64
	if count == 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << uint(count)) - 1
	}
	return BranchMap{bits: bits & mask, count: count}, nil
}

// Pop removes and returns the oldest (LSB) outcome.
func (m *BranchMap) Pop() (taken bool, ok bool) {
	if m.count == 0 {
		return false, false
	}
	taken = m.bits&1 != 0
	m.bits >>= 1
	m.count--
	return taken, true
}

// Len reports the number of outcomes still queued.
func (m *BranchMap) Len() int { return m.count }

// Empty reports whether every outcome has been consumed.
func (m *BranchMap) Empty() bool { return m.count == 0 }
