// Package phylonj builds unrooted binary phylogenetic trees from a square
// pairwise-distance matrix using Neighbor Joining and its refinements.
//
// Three engines are provided, in increasing order of sophistication:
//
//   - NJ: classical Neighbor Joining (Saitou & Nei).
//   - BIONJ: NJ augmented with a variance-estimate matrix that weights the
//     reduction step (Gascuel).
//   - BoundingBIONJ: a RapidNJ-style accelerated BIONJ, using per-row
//     distance-sorted auxiliary matrices and an admissible pruning bound
//     to avoid scanning every column of every row on every iteration.
//
// BoundingBIONJ produces the same tree as BIONJ (same topology, same
// branch lengths to numerical tolerance) and is faster on large inputs.
// NJ and BIONJ pick each join by the same Q-criterion but combine the
// joined rows with different weights, so their branch lengths differ.
//
// Basic usage:
//
//	cfg := phylonj.DefaultConfig()
//	report, err := phylonj.BuildTree("distances.txt", "tree.nwk", cfg)
//
// For the accelerated engine:
//
//	report, err := phylonj.BuildTreeRapid("distances.txt", "tree.nwk", cfg)
//	// report.OperationCount is the number of S-row entries visited in total.
package phylonj
