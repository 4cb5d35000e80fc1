package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMergeOverwritesByID(t *testing.T) {
	store := NewStore()

	store.Merge([]Node{
		{ID: "n1", Labels: []string{"Class"}, Props: Properties{"name": "Old"}},
	}, nil)
	store.Merge([]Node{
		{ID: "n1", Labels: []string{"Class"}, Props: Properties{"name": "New"}},
	}, nil)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Nodes, 1)
	// Overwrite is wholesale, not a field merge.
	assert.Equal(t, "New", snapshot.Nodes[0].Props.String("name"))
}

func TestStoreMergeClassifiesAndNormalizes(t *testing.T) {
	store := NewStore()
	store.Merge(
		[]Node{{ID: "n1", Labels: []string{"Interface"}}},
		[]Link{{ID: "l1", SourceID: "n1", TargetID: "n2", Type: "extends"}},
	)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Nodes, 1)
	require.Len(t, snapshot.Links, 1)
	assert.Equal(t, RoleInterface, snapshot.Nodes[0].Role)
	assert.Equal(t, RelExtends, snapshot.Links[0].Type)
}

func TestStoreMergeSkipsMalformedEntries(t *testing.T) {
	store := NewStore()
	store.Merge(
		[]Node{{ID: "", Labels: []string{"Class"}}},
		[]Link{
			{ID: "l1", SourceID: "", TargetID: "b", Type: RelExtends},
			{ID: "", SourceID: "a", TargetID: "b", Type: RelExtends},
		},
	)

	nodes, links := store.Len()
	assert.Equal(t, 0, nodes)
	assert.Equal(t, 0, links)
}

func TestStoreSnapshotIsSortedAndDetached(t *testing.T) {
	store := NewStore()
	store.Merge([]Node{
		{ID: "b", Labels: []string{"Class"}},
		{ID: "a", Labels: []string{"Class"}},
		{ID: "c", Labels: []string{"Class"}},
	}, nil)

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Nodes, 3)
	assert.Equal(t, "a", snapshot.Nodes[0].ID)
	assert.Equal(t, "b", snapshot.Nodes[1].ID)
	assert.Equal(t, "c", snapshot.Nodes[2].ID)

	// Later merges must not leak into an already-taken snapshot.
	store.Merge([]Node{{ID: "d", Labels: []string{"Class"}}}, nil)
	assert.Len(t, snapshot.Nodes, 3)
}

func TestStoreReset(t *testing.T) {
	store := NewStore()
	store.Merge([]Node{{ID: "a", Labels: []string{"Class"}}}, []Link{{ID: "l", SourceID: "a", TargetID: "a", Type: RelDependency}})
	store.Reset()

	nodes, links := store.Len()
	assert.Equal(t, 0, nodes)
	assert.Equal(t, 0, links)
}
