package phylonj

import (
	"math"
	"sort"
	"sync"
)

// BoundingBIONJEngine implements the RapidNJ-style accelerated variant
// of BIONJ: it produces exactly the same tree as BIONJEngine, but avoids
// scanning every column of every row on every iteration by keeping each
// row's distances sorted ascending (S, paired with cluster ids in I)
// and pruning the scan as soon as no remaining entry in the row could
// possibly beat the best Q value found anywhere so far.
type BoundingBIONJEngine struct {
	*BIONJEngine

	S *Matrix[float64] // per-row distances, ascending, sentinel-terminated
	I *Matrix[int]     // per-row cluster ids, same permutation as S

	// clusterToRow maps a cluster id to its current row, or -1 if that
	// cluster has been consumed by a join.
	clusterToRow []int
	// clusterTotals holds each cluster's live row total, or -Inf for a
	// dead cluster — chosen so that Q values involving a dead cluster
	// are always larger than any live candidate, removing a liveness
	// branch from the hot loop.
	clusterTotals       []float64
	scaledClusterTotals []float64

	prevMinima []qEntry // previous iteration's per-row minima, used to order this iteration's scan
	nextPurge  int

	mu             sync.Mutex
	OperationCount int64 // total S-row entries visited across the whole run
}

// NewBoundingBIONJEngine constructs a BoundingBIONJ engine and performs
// the initial S/I setup: one heapsort per row, done in parallel.
func NewBoundingBIONJEngine(dm *DistanceMatrix, workers int) *BoundingBIONJEngine {
	base := NewBIONJEngine(dm, workers)
	n := base.D.Size()

	e := &BoundingBIONJEngine{
		BIONJEngine:         base,
		S:                   NewMatrix[float64](n),
		I:                   NewMatrix[int](n),
		clusterToRow:        make([]int, n),
		clusterTotals:       make([]float64, n),
		scaledClusterTotals: make([]float64, n),
	}
	for r := 0; r < n; r++ {
		e.clusterToRow[r] = r
		e.clusterTotals[r] = e.D.RowTotal(r)
	}
	e.nextPurge = 2 * n / 3

	parallelRows(n, e.workers, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			e.sortRow(r)
		}
	})
	return e
}

// sortRow copies row r of D (minus the diagonal) into S[r], copies the
// matching cluster ids into I[r], appends the +Inf sentinel, then
// mirror-heapsorts S[r]/I[r] together into ascending order.
func (e *BoundingBIONJEngine) sortRow(r int) {
	n := e.D.Size()
	source := e.D.Row(r)
	values := e.S.Row(r)
	ids := e.I.Row(r)

	w := 0
	for i := 0; i < n; i++ {
		if i == r {
			continue
		}
		values[w] = source[i]
		ids[w] = int(e.arena.rowToCluster[i])
		w++
	}
	values[w] = math.Inf(1)
	ids[w] = 0

	mirroredHeapsort(values[:w], ids[:w], w)
}

// purgeRow compacts S[r]/I[r] in place, dropping entries whose cluster
// id is no longer live. The residual stays ascending because purging
// only removes entries, never reorders the survivors.
func (e *BoundingBIONJEngine) purgeRow(r int) {
	values := e.S.Row(r)
	ids := e.I.Row(r)

	w := 0
	for i := 0; ; i++ {
		values[w] = values[i]
		ids[w] = ids[i]
		if math.IsInf(values[i], 1) {
			break
		}
		if e.clusterToRow[ids[i]] >= 0 {
			w++
		}
	}
}

// decideRowScanOrder builds this iteration's row visit order from last
// iteration's per-row minima, sorted ascending by value: each past
// minimum contributes its row then its column (skipping anything
// already enqueued), and any row not mentioned is appended afterward in
// row order. Prioritizing rows that produced a small Q last time tends
// to tighten the shared bound early, maximizing how much of the rest of
// the scan gets pruned.
func (e *BoundingBIONJEngine) decideRowScanOrder() []int {
	n := e.D.Size()
	order := make([]int, 0, n)
	chosen := make([]bool, n)

	sorted := append([]qEntry(nil), e.prevMinima...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	enqueue := func(row int) {
		if row < n && !chosen[row] {
			order = append(order, row)
			chosen[row] = true
		}
	}
	for _, m := range sorted {
		if math.IsInf(m.Value, 1) {
			break
		}
		enqueue(m.Row)
		enqueue(m.Col)
	}
	for r := 0; r < n; r++ {
		if !chosen[r] {
			order = append(order, r)
		}
	}
	return order
}

// rowMinimum scans S[row]/I[row] in ascending order, stopping as soon
// as an entry is reached that is no smaller than the admissible bound
// β = qBest + maxTot + rowTotal. The bound is admissible: for an entry
// D >= β paired with cluster c, Q = D - t[c] - rowTotal >=
// qBest + maxTot - t[c] >= qBest, because maxTot is the largest scaled
// total of any live cluster, so no later entry can improve on qBest.
// It returns the best (row, column) pair found in this row and the
// number of entries visited, for the caller's operation count.
func (e *BoundingBIONJEngine) rowMinimum(row int, maxTot, qBest float64) (qEntry, int) {
	n := e.D.Size()
	tMult := 0.0
	if n > 2 {
		tMult = 1 / float64(n-2)
	}
	rowTotal := e.D.RowTotal(row) * tMult
	bound := qBest + maxTot + rowTotal

	values := e.S.Row(row)
	ids := e.I.Row(row)
	best := qEntry{Row: row, Col: 0, Value: math.Inf(1)}

	visited := 0
	for i := 0; values[i] < bound; i++ {
		visited++
		cluster := ids[i]
		qrc := values[i] - e.scaledClusterTotals[cluster] - rowTotal
		if qrc < best.Value {
			otherRow := e.clusterToRow[cluster]
			if otherRow >= 0 {
				lo, hi := otherRow, row
				if row < otherRow {
					lo, hi = row, otherRow
				}
				best.Col, best.Row, best.Value = lo, hi, qrc
				if qrc < qBest {
					qBest = qrc
					bound = qBest + maxTot + rowTotal
				}
			}
		}
	}
	return best, visited + 1
}

// rowMinima computes every row's bounded minimum in the row-scan order
// from decideRowScanOrder, tightening a shared qBest as rows complete.
func (e *BoundingBIONJEngine) rowMinima() []qEntry {
	n := e.D.Size()
	c := len(e.arena.clusters)
	tMult := 0.0
	if n > 2 {
		tMult = 1 / float64(n-2)
	}

	maxTot := 0.0
	for i := 0; i < c; i++ {
		e.scaledClusterTotals[i] = e.clusterTotals[i] * tMult
		if e.clusterToRow[i] >= 0 && e.scaledClusterTotals[i] > maxTot {
			maxTot = e.scaledClusterTotals[i]
		}
	}

	order := e.decideRowScanOrder()
	minima := make([]qEntry, n)
	qBest := math.Inf(1)

	parallelRows(n, e.workers, func(lo, hi int) {
		for idx := lo; idx < hi; idx++ {
			row := order[idx]

			e.mu.Lock()
			localQBest := qBest
			e.mu.Unlock()

			entry, visited := e.rowMinimum(row, maxTot, localQBest)
			minima[row] = entry

			e.mu.Lock()
			if entry.Value < qBest {
				qBest = entry.Value
			}
			e.OperationCount += int64(visited)
			e.mu.Unlock()
		}
	})

	e.prevMinima = minima
	return minima
}

// cluster performs one BoundingBIONJ reduction step: the BIONJ
// reduction itself (inherited, unchanged), then the RapidNJ bookkeeping
// that keeps clusterToRow/clusterTotals/S/I consistent with the shrunk
// D/V matrices.
func (e *BoundingBIONJEngine) cluster(a, b int) {
	n := e.D.Size()
	clusterA := int(e.arena.rowToCluster[a])
	clusterB := int(e.arena.rowToCluster[b])
	clusterMoved := int(e.arena.rowToCluster[n-1])

	e.clusterToRow[clusterA] = -1
	e.clusterToRow[clusterB] = -1
	newClusterID := len(e.arena.clusters)

	e.BIONJEngine.cluster(a, b)

	newN := e.D.Size()
	e.clusterToRow = append(e.clusterToRow, a)
	e.clusterTotals = append(e.clusterTotals, e.D.RowTotal(a))
	e.scaledClusterTotals = append(e.scaledClusterTotals, 0)

	if b < newN {
		e.clusterToRow[clusterMoved] = b
	}

	e.S.SwapRowPointer(b, newN)
	e.I.SwapRowPointer(b, newN)

	for wipe := 0; wipe < newClusterID; wipe++ {
		e.clusterTotals[wipe] = math.Inf(-1)
	}
	for r := 0; r < newN; r++ {
		cid := int(e.arena.rowToCluster[r])
		e.clusterTotals[cid] = e.D.RowTotal(r)
	}

	e.sortRow(a)
}

// Run executes the clustering loop to completion, purging the S/I
// matrices of dead entries every time the live row count falls to
// ⌊2n/3⌋ of its value at the previous purge, and returns the final
// cluster arena.
func (e *BoundingBIONJEngine) Run() []Cluster {
	for e.D.Size() > 3 {
		minima := e.rowMinima()
		best := globalMinimum(minima)
		e.cluster(best.Col, best.Row)

		if e.D.Size() == e.nextPurge {
			n := e.D.Size()
			parallelRows(n, e.workers, func(lo, hi int) {
				for r := lo; r < hi; r++ {
					e.purgeRow(r)
				}
			})
			e.nextPurge = 2 * n / 3
		}
	}
	finishClustering(e.D, e.arena)
	return e.arena.clusters
}
