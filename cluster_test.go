package phylonj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClusterArenaSeedsLeaves(t *testing.T) {
	a := newClusterArena([]string{"A", "B", "C"})
	require.Len(t, a.clusters, 3)
	for i, name := range []string{"A", "B", "C"} {
		assert.True(t, a.clusters[i].IsLeaf())
		assert.Equal(t, name, a.clusters[i].Name)
		assert.Equal(t, ClusterID(i), a.rowToCluster[i])
	}
}

func TestAppendInternal2(t *testing.T) {
	a := newClusterArena([]string{"A", "B"})
	id := a.appendInternal2(0, 1, 1.5, 2.5)
	require.Equal(t, ClusterID(2), id)

	cluster := a.clusters[id]
	assert.False(t, cluster.IsLeaf())
	require.Len(t, cluster.Links, 2)
	assert.Equal(t, Link{Child: 0, Length: 1.5}, cluster.Links[0])
	assert.Equal(t, Link{Child: 1, Length: 2.5}, cluster.Links[1])
}

func TestAppendInternal3(t *testing.T) {
	a := newClusterArena([]string{"A", "B", "C"})
	id := a.appendInternal3(0, 1, 2, 0.5, 1.5, 2.5)
	require.Equal(t, ClusterID(3), id)

	cluster := a.clusters[id]
	require.Len(t, cluster.Links, 3)
	assert.Equal(t, 0.5, cluster.Links[0].Length)
	assert.Equal(t, 1.5, cluster.Links[1].Length)
	assert.Equal(t, 2.5, cluster.Links[2].Length)
}
