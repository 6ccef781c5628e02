package phylonj

import "math"

// qEntry is a candidate (row, column) pair and its Q-criterion value.
// column is always < row, matching the convention used throughout this
// package (and the RapidNJ papers it follows) that only the lower
// triangle is ever addressed directly.
type qEntry struct {
	Row, Col int
	Value    float64
}

// scaledRowTotals returns t[i] = R[i]/(n-2), or all zeros when n <= 2
// (a case the clustering loop never actually reaches, but which the
// formula must not divide by zero for).
func scaledRowTotals(d *Matrix[float64], workers int) []float64 {
	n := d.Size()
	tot := make([]float64, n)
	nless2 := float64(n - 2)
	if n <= 2 {
		return tot
	}
	mult := 1 / nless2
	parallelRows(n, workers, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			tot[r] = d.RowTotal(r) * mult
		}
	})
	return tot
}

// rowMinimumPlain finds, within row's lower triangle, the column c < row
// minimizing D[row][c] - t[c], then subtracts t[row]. Ties within the
// row are broken toward the smaller column by scanning ascending and
// replacing only on strict improvement. Row 0 has no columns to its
// left and is defined to have value +Inf.
func rowMinimumPlain(d *Matrix[float64], tot []float64, row int) qEntry {
	best := qEntry{Row: row, Col: 0, Value: math.Inf(1)}
	if row == 0 {
		return best
	}
	rowData := d.Row(row)
	for c := 0; c < row; c++ {
		v := rowData[c] - tot[c]
		if v < best.Value {
			best.Col = c
			best.Value = v
		}
	}
	best.Value -= tot[row]
	return best
}

// computeRowMinimaPlain computes every row's minimum in parallel; this
// is the row-minimum scan shared, unmodified, by NJ and BIONJ (BIONJ's
// variance matrix does not affect the Q-criterion, only the reduction
// step). BoundingBIONJ replaces this with a bounded scan over S/I
// instead (see rapidnj.go).
func computeRowMinimaPlain(d *Matrix[float64], workers int) []qEntry {
	n := d.Size()
	tot := scaledRowTotals(d, workers)
	minima := make([]qEntry, n)
	parallelRows(n, workers, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			minima[r] = rowMinimumPlain(d, tot, r)
		}
	})
	return minima
}

// globalMinimum reduces per-row minima to the single best (row, column)
// pair. Ties are broken toward the smaller row index, which falls out
// naturally from a strict-< scan in ascending row order (the first
// occurrence of the minimum value wins).
func globalMinimum(minima []qEntry) qEntry {
	best := qEntry{Value: math.Inf(1)}
	for r := 0; r < len(minima); r++ {
		if minima[r].Value < best.Value {
			best = minima[r]
		}
	}
	return best
}

// NJEngine implements classical Neighbor Joining.
type NJEngine struct {
	Taxa    []string
	D       *Matrix[float64]
	arena   *clusterArena
	workers int
}

// NewNJEngine constructs an NJ engine from an already-loaded, already
// symmetrized distance matrix.
func NewNJEngine(dm *DistanceMatrix, workers int) *NJEngine {
	return &NJEngine{
		Taxa:    dm.Taxa,
		D:       dm.D,
		arena:   newClusterArena(dm.Taxa),
		workers: resolveWorkers(workers),
	}
}

// njLambdaMu is the plain-NJ weighting: an even split between the two
// joined rows. BIONJ overrides this with a variance-informed choice.
func njLambdaMu() (lambda, mu float64) { return 0.5, 0.5 }

// reduceRow applies the shared NJ/BIONJ reduction formula for row i
// (i != a, b), given the chosen lambda/mu, and returns the new D[a][i].
// It also returns the delta to apply to R[i] and the delta to apply to
// R[a] (R[a] is finished off by the caller, since BIONJ recomputes it by
// a full re-sum instead of incrementally).
func reduceRow(d *Matrix[float64], a, b, i int, lambda, mu, dCorrection float64) (newDai, deltaRi, deltaRa float64) {
	dai := d.At(a, i)
	dbi := d.At(b, i)
	dci := lambda*dai + mu*dbi + dCorrection
	return dci, dci - dai - dbi, dci - dai
}

// cluster performs one NJ reduction step for the chosen pair (a, b),
// 0 <= a < b < n: computes branch lengths, folds row b into row a,
// appends the new Internal-2 cluster, retargets the row→cluster map,
// and shrinks the matrix by removing row b.
func (e *NJEngine) cluster(a, b int) {
	n := e.D.Size()
	nless2 := float64(n - 2)
	tMult := 0.0
	if n >= 3 {
		tMult = 0.5 / nless2
	}
	medianLength := 0.5 * e.D.At(a, b)
	fudge := (e.D.RowTotal(a) - e.D.RowTotal(b)) * tMult
	aLen := medianLength + fudge
	bLen := medianLength - fudge

	lambda, mu := njLambdaMu()
	dCorrection := -lambda*aLen - mu*bLen

	for i := 0; i < n; i++ {
		if i == a || i == b {
			continue
		}
		dci, deltaRi, deltaRa := reduceRow(e.D, a, b, i, lambda, mu, dCorrection)
		e.D.Set(a, i, dci)
		e.D.Set(i, a, dci)
		e.D.AddRowTotal(i, deltaRi)
		e.D.AddRowTotal(a, deltaRa)
	}
	e.D.AddRowTotal(a, -e.D.At(a, b))

	aID, bID := e.arena.rowToCluster[a], e.arena.rowToCluster[b]
	newID := e.arena.appendInternal2(aID, bID, aLen, bLen)
	e.arena.rowToCluster[a] = newID
	e.arena.rowToCluster[b] = e.arena.rowToCluster[n-1]
	e.D.RemoveRow(b)
}

// finishClustering closes the unrooted tree: with exactly 3 rows left,
// the three pairwise distances uniquely determine the three branch
// lengths of the terminal Internal-3 cluster.
func finishClustering(d *Matrix[float64], arena *clusterArena) {
	halfD01 := 0.5 * d.At(0, 1)
	halfD02 := 0.5 * d.At(0, 2)
	halfD12 := 0.5 * d.At(1, 2)
	arena.appendInternal3(
		arena.rowToCluster[0], arena.rowToCluster[1], arena.rowToCluster[2],
		halfD01+halfD02-halfD12,
		halfD01+halfD12-halfD02,
		halfD02+halfD12-halfD01,
	)
}

// Run executes the clustering loop to completion and returns the final
// cluster arena (ready for Newick serialization).
func (e *NJEngine) Run() []Cluster {
	for e.D.Size() > 3 {
		minima := computeRowMinimaPlain(e.D, e.workers)
		best := globalMinimum(minima)
		e.cluster(best.Col, best.Row)
	}
	finishClustering(e.D, e.arena)
	return e.arena.clusters
}
