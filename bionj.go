package phylonj

// BIONJEngine implements BIONJ: Neighbor Joining augmented with a
// variance-estimate matrix that weights the reduction step. The
// Q-criterion and row-minimum scan are identical to NJ's; only the
// reduction step differs. The variance matrix does not enter the Q
// values directly, but the lambda it yields changes the reduced
// distances, and through them the Q values of later iterations.
type BIONJEngine struct {
	Taxa    []string
	D       *Matrix[float64]
	V       *Matrix[float64]
	arena   *clusterArena
	workers int
}

// NewBIONJEngine constructs a BIONJ engine, seeding the variance matrix
// as a copy of the distance matrix.
func NewBIONJEngine(dm *DistanceMatrix, workers int) *BIONJEngine {
	return &BIONJEngine{
		Taxa:    dm.Taxa,
		D:       dm.D,
		V:       dm.D.Clone(),
		arena:   newClusterArena(dm.Taxa),
		workers: resolveWorkers(workers),
	}
}

// chooseLambda implements the BIONJ weighting: an estimate of how much
// more of row a (versus row b) should survive into the merged row,
// derived from which of the two rows' variance estimates agree more
// with the rest of the matrix. Vab == 0 has no information to weight
// with, so it falls back to the NJ even split; the result is always
// clamped to [0, 1] since it's used directly as a convex-combination
// weight.
func (e *BIONJEngine) chooseLambda(a, b int, vab float64) float64 {
	if vab == 0 {
		return 0.5
	}
	n := e.D.Size()
	var sum float64
	for i := 0; i < n; i++ {
		if i == a || i == b {
			continue
		}
		sum += e.V.At(b, i) - e.V.At(a, i)
	}
	lambda := 0.5 + sum/(2*float64(n-2)*vab)
	if lambda > 1 {
		lambda = 1
	}
	if lambda < 0 {
		lambda = 0
	}
	return lambda
}

// cluster performs one BIONJ reduction step for (a, b), 0 <= a < b < n.
func (e *BIONJEngine) cluster(a, b int) {
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

	vab := e.V.At(a, b)
	lambda := e.chooseLambda(a, b, vab)
	mu := 1 - lambda
	dCorrection := -lambda*aLen - mu*bLen
	vCorrection := -lambda * mu * vab

	for i := 0; i < n; i++ {
		if i == a || i == b {
			continue
		}
		dci, deltaRi, _ := reduceRow(e.D, a, b, i, lambda, mu, dCorrection)
		e.D.Set(a, i, dci)
		e.D.Set(i, a, dci)
		e.D.AddRowTotal(i, deltaRi)

		vci := lambda*e.V.At(a, i) + mu*e.V.At(b, i) + vCorrection
		e.V.Set(a, i, vci)
		e.V.Set(i, a, vci)
	}
	// BIONJ recomputes R[a] by a full re-sum rather than maintaining it
	// incrementally: the per-column correction above depends on lambda,
	// so the incremental NJ update would drift. Column b is still in
	// view here but is dropped by RemoveRow(b) below, so it is excluded.
	e.D.SetRowTotal(a, RowSumFloat64(e.D, a)-e.D.At(a, b))

	aID, bID := e.arena.rowToCluster[a], e.arena.rowToCluster[b]
	newID := e.arena.appendInternal2(aID, bID, aLen, bLen)
	e.arena.rowToCluster[a] = newID
	e.arena.rowToCluster[b] = e.arena.rowToCluster[n-1]
	e.D.RemoveRow(b)
	e.V.RemoveRow(b)
}

// Run executes the clustering loop to completion and returns the final
// cluster arena.
func (e *BIONJEngine) Run() []Cluster {
	for e.D.Size() > 3 {
		minima := computeRowMinimaPlain(e.D, e.workers)
		best := globalMinimum(minima)
		e.cluster(best.Col, best.Row)
	}
	finishClustering(e.D, e.arena)
	return e.arena.clusters
}
