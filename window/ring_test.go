package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumLast(counts []uint32, n int) uint32 {
	if len(counts) > n {
		counts = counts[len(counts)-n:]
	}
	var s uint32
	for _, c := range counts {
		s += c
	}
	return s
}

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := New(size)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestRollingSum_MatchesLastN(t *testing.T) {
	const size = 60
	a, err := New(size)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), a.RollingSum())

	var pushed []uint32
	for k := 0; k < 3*size+7; k++ {
		c := uint32((k*7)%11 + k%3)
		a.PushTick(c)
		pushed = append(pushed, c)

		require.Equal(t, sumLast(pushed, size), a.RollingSum(), "after %d ticks", k+1)

		var slotSum uint32
		for _, s := range a.Slots() {
			slotSum += s
		}
		require.Equal(t, slotSum, a.RollingSum(), "running sum diverged from slots after %d ticks", k+1)
	}
	assert.Equal(t, uint64(3*size+7), a.Ticks())
}

func TestPushTick_OverwritesInPlace(t *testing.T) {
	a, err := New(4)
	require.NoError(t, err)

	for _, c := range []uint32{10, 1, 1, 1} {
		a.PushTick(c)
	}
	assert.Equal(t, uint32(13), a.RollingSum())
	assert.Equal(t, 0, a.Cursor())

	// The fifth push replaces slot 0; its original 10 must no longer count.
	a.PushTick(2)
	assert.Equal(t, uint32(5), a.RollingSum())
	assert.Equal(t, 1, a.Cursor())
	assert.Equal(t, []uint32{1, 1, 1, 2}, a.Slots())
}

func TestPartialWindowIncludesZeroSlots(t *testing.T) {
	a, err := New(60)
	require.NoError(t, err)

	a.PushTick(3)
	a.PushTick(0)
	a.PushTick(5)

	assert.Equal(t, uint32(8), a.RollingSum())
	slots := a.Slots()
	assert.Len(t, slots, 60)
	assert.Equal(t, []uint32{3, 0, 5}, slots[57:])
	assert.Equal(t, make([]uint32, 57), slots[:57])
}
