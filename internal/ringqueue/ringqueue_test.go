package ringqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueDequeueIsFIFO(t *testing.T) {
	q := New[int](2)
	for i := 0; i < 10; i++ {
		q.Enqueue(i)
	}
	require.Equal(t, 10, q.Len())
	for i := 0; i < 10; i++ {
		v, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestDequeueEmptyReturnsTypedError(t *testing.T) {
	q := New[string](4)
	_, err := q.Dequeue()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestInterleavedEnqueueDequeuePreservesOrder(t *testing.T) {
	q := New[int](1)
	var out []int
	var want []int
	next := 0

	ops := []string{"e", "e", "d", "e", "d", "d", "e", "e", "e", "d", "d", "d", "d", "d"}
	for _, op := range ops {
		switch op {
		case "e":
			q.Enqueue(next)
			want = append(want, next)
			next++
		case "d":
			if q.Len() == 0 {
				continue
			}
			v, err := q.Dequeue()
			require.NoError(t, err)
			out = append(out, v)
		}
	}
	assert.Equal(t, want[:len(out)], out)
}

func TestGrowthPreservesExistingElementsAcrossWrap(t *testing.T) {
	q := New[int](2)
	q.Enqueue(1)
	q.Enqueue(2)
	v, _ := q.Dequeue()
	assert.Equal(t, 1, v)
	q.Enqueue(3)
	q.Enqueue(4) // forces growth while head != 0
	for _, want := range []int{2, 3, 4} {
		got, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
