package phylonj

// ClusterID indexes into an Engine's cluster arena. IDs are assigned in
// append order and never reused; 0 is the first taxon's leaf cluster.
type ClusterID int

// Link describes an edge from an internal cluster down to a child
// cluster, with the branch length separating them.
type Link struct {
	Child  ClusterID
	Length float64
}

// Cluster is one node of the append-only cluster forest: a Leaf carries
// a taxon name and no links; an internal node (2 links during ordinary
// reduction, 3 links for the single terminal join that closes the
// unrooted tree) carries no name.
type Cluster struct {
	Name  string // non-empty only for leaves
	Links []Link // empty for leaves, 2 for Internal-2, 3 for Internal-3
}

// IsLeaf reports whether c is a taxon leaf.
func (c Cluster) IsLeaf() bool { return len(c.Links) == 0 }

// clusterArena is the append-only cluster list shared by all three
// engines, plus the row→cluster map for the current live rank.
type clusterArena struct {
	clusters     []Cluster
	rowToCluster []ClusterID
}

func newClusterArena(taxa []string) *clusterArena {
	a := &clusterArena{
		clusters:     make([]Cluster, 0, 2*len(taxa)),
		rowToCluster: make([]ClusterID, len(taxa)),
	}
	for i, name := range taxa {
		a.clusters = append(a.clusters, Cluster{Name: name})
		a.rowToCluster[i] = ClusterID(i)
	}
	return a
}

// appendInternal2 appends a new 2-child internal cluster joining the
// clusters currently at rows a and b, and returns its id.
func (a *clusterArena) appendInternal2(aID, bID ClusterID, aLen, bLen float64) ClusterID {
	id := ClusterID(len(a.clusters))
	a.clusters = append(a.clusters, Cluster{
		Links: []Link{{Child: aID, Length: aLen}, {Child: bID, Length: bLen}},
	})
	return id
}

// appendInternal3 appends the single terminal 3-child cluster that
// closes the unrooted tree.
func (a *clusterArena) appendInternal3(x, y, z ClusterID, xLen, yLen, zLen float64) ClusterID {
	id := ClusterID(len(a.clusters))
	a.clusters = append(a.clusters, Cluster{
		Links: []Link{{Child: x, Length: xLen}, {Child: y, Length: yLen}, {Child: z, Length: zLen}},
	})
	return id
}
