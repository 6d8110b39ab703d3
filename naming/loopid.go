package naming

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// LoopId is a stable hash of a cyclic sequence of entity ids (spec.md 3.3):
// any rotation of the same closed walk hashes to the same LoopId.
type LoopId uint64

// String renders the LoopId as a fixed-width hex string, the form stored in
// a selector's data.loopId field.
func (id LoopId) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// ComputeLoopId rotates ids to its lexicographically minimal rotation, then
// hashes the result, so any rotation of the same cyclic sequence of entity
// ids yields the same LoopId (spec.md 3.3, 8 "loop id rotation-invariance").
func ComputeLoopId(ids []int32) LoopId {
	if len(ids) == 0 {
		return 0
	}
	rotated := minRotation(ids)
	h := fnv.New64a()
	buf := make([]byte, 4)
	for _, id := range rotated {
		binary.LittleEndian.PutUint32(buf, uint32(id))
		h.Write(buf)
	}
	return LoopId(h.Sum64())
}

// minRotation returns the lexicographically smallest rotation of ids.
func minRotation(ids []int32) []int32 {
	n := len(ids)
	best := 0
	for start := 1; start < n; start++ {
		if rotationLess(ids, start, best) {
			best = start
		}
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = ids[(best+i)%n]
	}
	return out
}

// rotationLess reports whether the rotation of ids starting at a sorts
// before the rotation starting at b.
func rotationLess(ids []int32, a, b int) bool {
	n := len(ids)
	for i := 0; i < n; i++ {
		va := ids[(a+i)%n]
		vb := ids[(b+i)%n]
		if va != vb {
			return va < vb
		}
	}
	return false
}
