package phylonj

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMirroredHeapsortAscending(t *testing.T) {
	values := []float64{5, 1, 4, 2, 8, 3}
	ids := []int{50, 10, 40, 20, 80, 30}

	mirroredHeapsort(values, ids, len(values))

	assert.True(t, sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }))
	// ids were a fixed permutation of values/10 before the sort; the
	// permutation applied to values must be applied identically to ids.
	for i, v := range values {
		assert.Equal(t, int(v)*10, ids[i])
	}
}

func TestMirroredHeapsortEmptyAndSingleton(t *testing.T) {
	mirroredHeapsort(nil, nil, 0)

	values := []float64{1}
	ids := []int{7}
	mirroredHeapsort(values, ids, 1)
	assert.Equal(t, []float64{1}, values)
	assert.Equal(t, []int{7}, ids)
}

func TestMirroredHeapsortWithDuplicates(t *testing.T) {
	values := []float64{3, 1, 3, 1, 2}
	ids := []int{0, 1, 2, 3, 4}

	mirroredHeapsort(values, ids, len(values))

	assert.True(t, sort.SliceIsSorted(values, func(i, j int) bool { return values[i] < values[j] }))
	// every id must still point at its original value.
	original := map[int]float64{0: 3, 1: 1, 2: 3, 3: 1, 4: 2}
	for i, id := range ids {
		assert.Equal(t, original[id], values[i])
	}
}
