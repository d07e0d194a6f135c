package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededSourceDeterministic(t *testing.T) {
	a := NewSeeded(12345)
	b := NewSeeded(12345)

	for i := 0; i < 20; i++ {
		require.Equal(t, a.IntN(100000), b.IntN(100000), "mismatch at %d", i)
		require.Equal(t, a.Float64(), b.Float64(), "mismatch at %d", i)
	}
}

func TestSeededSourcesDiffer(t *testing.T) {
	a := NewSeeded(1)
	b := NewSeeded(2)
	same := 0
	for i := 0; i < 20; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 20)
}

func TestSeedWordChangesWithSalt(t *testing.T) {
	assert.NotEqual(t, seedWord(99, "a"), seedWord(99, "b"))
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, int64(42), ResolveSeed(42))
	assert.Equal(t, int64(-7), ResolveSeed(-7))

	got := ResolveSeed(0)
	assert.NotZero(t, got)
	assert.Positive(t, got)
}

func TestSeededSatisfiesSource(t *testing.T) {
	var src Source = NewSeeded(3)
	for i := 0; i < 100; i++ {
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
		n := src.IntN(3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}
}
