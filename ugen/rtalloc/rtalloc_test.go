package rtalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	for _, cfg := range []Config{
		{MinSize: 0, MaxSize: 16, PerClass: 1},
		{MinSize: 32, MaxSize: 16, PerClass: 1},
		{MinSize: 16, MaxSize: 16, PerClass: 0},
	} {
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrConfig)
	}
}

func TestAllocRoundsToClass(t *testing.T) {
	a, err := New(Config{MinSize: 10, MaxSize: 100, PerClass: 2})
	require.NoError(t, err)
	assert.Equal(t, 128, a.MaxSize())

	for _, tc := range []struct{ n, capacity int }{
		{1, 16}, {16, 16}, {17, 32}, {64, 64}, {65, 128}, {128, 128},
	} {
		buf := a.Alloc(tc.n)
		require.NotNil(t, buf, "Alloc(%d)", tc.n)
		assert.Len(t, buf, tc.n)
		assert.Equal(t, tc.capacity, cap(buf), "Alloc(%d)", tc.n)
		assert.True(t, a.Free(buf))
	}
}

func TestAllocZeroFills(t *testing.T) {
	a, err := New(Config{MinSize: 8, MaxSize: 8, PerClass: 1})
	require.NoError(t, err)

	buf := a.Alloc(8)
	for i := range buf {
		buf[i] = 42
	}

	require.True(t, a.Free(buf))

	again := a.Alloc(4)
	assert.Equal(t, []float64{0, 0, 0, 0}, again)
}

func TestExhaustionAndRecovery(t *testing.T) {
	a, err := New(Config{MinSize: 4, MaxSize: 4, PerClass: 3})
	require.NoError(t, err)

	var held [][]float64
	for range 3 {
		buf := a.Alloc(4)
		require.NotNil(t, buf)
		held = append(held, buf)
	}

	assert.Nil(t, a.Alloc(4))
	assert.Nil(t, a.Alloc(5))
	assert.Nil(t, a.Alloc(0))

	st := a.Stats()
	assert.Equal(t, uint64(3), st.Allocs)
	assert.Equal(t, uint64(3), st.Failures)
	assert.Equal(t, int64(3), st.InUse)

	require.True(t, a.Free(held[1]))
	assert.NotNil(t, a.Alloc(2))
}

func TestFreeRejectsForeignAndDouble(t *testing.T) {
	a, err := New(Config{MinSize: 4, MaxSize: 16, PerClass: 2})
	require.NoError(t, err)

	assert.False(t, a.Free(nil))
	assert.False(t, a.Free(make([]float64, 4)))
	assert.False(t, a.Free(make([]float64, 3, 16)))

	buf := a.Alloc(16)
	require.NotNil(t, buf)

	assert.False(t, a.Free(buf[1:]), "interior slice")
	assert.True(t, a.Free(buf[:0]), "zero-length view of an owned buffer")
	assert.False(t, a.Free(buf), "double free")

	st := a.Stats()
	assert.Equal(t, uint64(1), st.Frees)
	assert.Equal(t, int64(0), st.InUse)
}

func TestAllocFreeDoNotAllocate(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(100, func() {
		buf := a.Alloc(512)
		a.Free(buf)
	})
	assert.Zero(t, allocs)
}
