package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeLoopIdRotationInvariant reproduces spec.md 8's loop id
// rotation-invariance property: computeLoopId(S) == computeLoopId(R) for
// any rotation R of S.
func TestComputeLoopIdRotationInvariant(t *testing.T) {
	s := []int32{11, 22, 33, 44, 55}
	base := ComputeLoopId(s)

	for start := 1; start < len(s); start++ {
		rotated := append(append([]int32{}, s[start:]...), s[:start]...)
		assert.Equal(t, base, ComputeLoopId(rotated), "rotation starting at %d", start)
	}
}

// TestComputeLoopIdDistinctSets checks that two loops over different
// underlying entity sets do not collide.
func TestComputeLoopIdDistinctSets(t *testing.T) {
	a := ComputeLoopId([]int32{1, 2, 3, 4})
	b := ComputeLoopId([]int32{1, 2, 3, 5})
	assert.NotEqual(t, a, b)
}

// TestComputeLoopIdEmpty checks the degenerate empty-loop case is handled
// without panicking and is distinct from any non-empty loop's id.
func TestComputeLoopIdEmpty(t *testing.T) {
	assert.Equal(t, LoopId(0), ComputeLoopId(nil))
	assert.NotEqual(t, LoopId(0), ComputeLoopId([]int32{1, 2, 3}))
}

func TestLoopIdString(t *testing.T) {
	id := ComputeLoopId([]int32{1, 2, 3})
	assert.Len(t, id.String(), 16)
}
