package ringbuffer_test

import (
	"testing"

	"github.com/rshzrh/sitrep/pkg/ringbuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushWithinCapacity(t *testing.T) {
	b := ringbuffer.New[int](5)

	for i := 0; i < 3; i++ {
		b.Push(i)
	}

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []int{0, 1, 2}, b.Slice())
}

func TestPushEvictsHeadOnOverflow(t *testing.T) {
	const cap = 5

	b := ringbuffer.New[int](cap)

	for i := 0; i < cap+3; i++ {
		b.Push(i)
	}

	require.LessOrEqual(t, b.Len(), cap)
	assert.Equal(t, cap, b.Len())
	assert.Equal(t, []int{3, 4, 5, 6, 7}, b.Slice())
}

func TestPushCapExactlyBoundary(t *testing.T) {
	b := ringbuffer.New[string](3)
	b.Push("a")
	b.Push("b")
	b.Push("c")
	b.Push("d")

	assert.Equal(t, []string{"b", "c", "d"}, b.Slice())
}

func TestAtOutOfRange(t *testing.T) {
	b := ringbuffer.New[int](3)
	b.Push(1)

	_, ok := b.At(5)
	assert.False(t, ok)

	_, ok = b.At(-1)
	assert.False(t, ok)

	v, ok := b.At(0)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestClear(t *testing.T) {
	b := ringbuffer.New[int](3)
	b.Push(1)
	b.Push(2)
	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Slice())

	b.Push(9)
	assert.Equal(t, []int{9}, b.Slice())
}
