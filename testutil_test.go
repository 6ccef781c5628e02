package phylonj

import (
	"math/rand"
	"sort"
	"strings"
)

// bipartitions returns the clades of a tree parsed from Newick: for
// every internal node other than the root, the set of leaf names below
// it, rendered as a sorted comma-joined string. The result depends on
// where the tree is rooted on disk, so two trees compare equal only if
// they also share the same root placement (as trees written by engines
// with the same join sequence do).
func bipartitions(root *ParsedNode) map[string]bool {
	out := map[string]bool{}
	var leavesUnder func(n *ParsedNode) []string
	leavesUnder = func(n *ParsedNode) []string {
		if len(n.Children) == 0 {
			return []string{n.Name}
		}
		var all []string
		for _, c := range n.Children {
			leaves := leavesUnder(c)
			all = append(all, leaves...)
			if len(c.Children) > 0 {
				out[canonicalSplit(leaves)] = true
			}
		}
		return all
	}
	leavesUnder(root)
	return out
}

func canonicalSplit(leaves []string) string {
	cp := append([]string(nil), leaves...)
	sort.Strings(cp)
	return strings.Join(cp, ",")
}

// randomSymmetricMatrix builds an n×n symmetric matrix with positive
// off-diagonal entries and a zero diagonal, seeded for reproducibility.
func randomSymmetricMatrix(n int, seed int64) *Matrix[float64] {
	rng := rand.New(rand.NewSource(seed))
	m := NewMatrix[float64](n)
	for r := 0; r < n; r++ {
		for c := r + 1; c < n; c++ {
			v := 1 + rng.Float64()*99
			m.Set(r, c, v)
			m.Set(c, r, v)
		}
	}
	RecomputeRowTotalsFloat64(m)
	return m
}

// clusterKindCounts tallies leaves, 2-child internals, and the single
// terminal 3-child internal in a finished cluster list.
func clusterKindCounts(clusters []Cluster) (leaves, internal2, internal3 int) {
	for _, c := range clusters {
		switch {
		case c.IsLeaf():
			leaves++
		case len(c.Links) == 2:
			internal2++
		case len(c.Links) == 3:
			internal3++
		}
	}
	return
}

func namedTaxa(n int) []string {
	taxa := make([]string, n)
	for i := range taxa {
		taxa[i] = string(rune('A' + i%26))
		if i >= 26 {
			taxa[i] += string(rune('0' + i/26))
		}
	}
	return taxa
}
