package phylonj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixSetAtRowTotal(t *testing.T) {
	m := NewMatrix[float64](3)
	m.Set(0, 1, 2)
	m.Set(1, 0, 2)
	m.Set(0, 2, 5)
	m.Set(2, 0, 5)
	m.Set(1, 2, 4)
	m.Set(2, 1, 4)
	RecomputeRowTotalsFloat64(m)

	assert.Equal(t, 2.0, m.At(0, 1))
	assert.Equal(t, 7.0, m.RowTotal(0))
	assert.Equal(t, 6.0, m.RowTotal(1))
	assert.Equal(t, 9.0, m.RowTotal(2))
}

func TestMatrixRemoveRowSwapsLast(t *testing.T) {
	m := NewMatrix[float64](4)
	vals := [][]float64{
		{0, 1, 2, 3},
		{1, 0, 4, 5},
		{2, 4, 0, 6},
		{3, 5, 6, 0},
	}
	for r := range vals {
		for c := range vals[r] {
			m.Set(r, c, vals[r][c])
		}
	}
	RecomputeRowTotalsFloat64(m)

	m.RemoveRow(1)
	require.Equal(t, 3, m.Size())
	// row 1 should now hold what was row 3 (the old last row).
	assert.Equal(t, 3.0, m.At(1, 0))
	assert.Equal(t, 6.0, m.At(1, 2))
	assert.Equal(t, m.RowTotal(1), 3.0+5.0+6.0)
	// row 0 and row 2 (old row 2) should have had their column 1
	// overwritten with what was column 3.
	assert.Equal(t, 3.0, m.At(0, 1))
	assert.Equal(t, 6.0, m.At(2, 1))
}

func TestMatrixSwapRowPointerIsPointerOnly(t *testing.T) {
	m := NewMatrix[float64](3)
	m.Set(0, 0, 10)
	m.Set(1, 0, 20)
	m.Set(2, 0, 30)

	m.SwapRowPointer(0, 2)
	assert.Equal(t, 30.0, m.At(0, 0))
	// rank is unchanged; SwapRowPointer never shrinks.
	assert.Equal(t, 3, m.Size())
	// mutating through the aliased row is visible at both indices.
	m.Set(0, 1, 99)
	assert.Equal(t, 99.0, m.Row(2)[1])
}

func TestMatrixClone(t *testing.T) {
	m := NewMatrix[float64](2)
	m.Set(0, 1, 7)
	m.Set(1, 0, 7)
	RecomputeRowTotalsFloat64(m)

	clone := m.Clone()
	clone.Set(0, 1, 99)
	assert.Equal(t, 7.0, m.At(0, 1))
	assert.Equal(t, 99.0, clone.At(0, 1))
	assert.Equal(t, m.RowTotal(0), clone.RowTotal(0))
}

func TestRowSumFloat64MatchesRowTotal(t *testing.T) {
	m := randomSymmetricMatrix(6, 1)
	for r := 0; r < 6; r++ {
		assert.InDelta(t, m.RowTotal(r), RowSumFloat64(m, r), 1e-9)
	}
}
