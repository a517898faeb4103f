package packet_test

import (
	"testing"

	"github.com/retroenv/rvtrace/internal/assert"
	"github.com/retroenv/rvtrace/packet"
)

func TestBranchMap_PushPopOrder(t *testing.T) {
	t.Parallel()

	var m packet.BranchMap
	assert.NoError(t, m.Push(true))
	assert.NoError(t, m.Push(false))
	assert.NoError(t, m.Push(true))

	taken, ok := m.Pop()
	assert.True(t, ok)
	assert.True(t, taken)

	taken, ok = m.Pop()
	assert.True(t, ok)
	assert.False(t, taken)

	assert.Equal(t, 1, m.Len())
}

func TestBranchMap_OverflowAt33(t *testing.T) {
	t.Parallel()

	var m packet.BranchMap
	for i := 0; i < packet.MaxBranchMap; i++ {
		assert.NoError(t, m.Push(i%2 == 0))
	}
	err := m.Push(true)
	assert.ErrorIs(t, err, packet.ErrCannotAddBranches)
}

func TestBranchMap_EmptyIsValid(t *testing.T) {
	t.Parallel()

	var m packet.BranchMap
	assert.True(t, m.Empty())
	_, ok := m.Pop()
	assert.False(t, ok)
}

func TestPushN_OrderingMatchesWireLSBFirst(t *testing.T) {
	t.Parallel()

	// bits, oldest at LSB: taken, taken, not-taken
	m, err := packet.PushN(0b011, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	taken, ok := m.Pop()
	assert.True(t, ok)
	assert.True(t, taken)

	taken, ok = m.Pop()
	assert.True(t, ok)
	assert.True(t, taken)

	taken, ok = m.Pop()
	assert.True(t, ok)
	assert.False(t, taken)
}

func TestPushN_RejectsOverflow(t *testing.T) {
	t.Parallel()

	_, err := packet.PushN(0, 33)
	assert.ErrorIs(t, err, packet.ErrCannotAddBranches)
}
