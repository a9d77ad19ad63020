package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hydronet/internal/network"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)
	net, src := network.Sample()

	id, err := db.SaveSnapshot("demo", net)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := db.LoadSnapshot(id)
	require.NoError(t, err)
	assert.Len(t, loaded.Nodes, len(net.Nodes))
	assert.Len(t, loaded.Pipes, len(net.Pipes))

	srcNode, ok := loaded.Node(src)
	require.True(t, ok)
	assert.Equal(t, "supply", srcNode.Label)
	assert.Equal(t, network.StatusManual, srcNode.Pressure.Status)
	require.NotNil(t, srcNode.Fluid)
	assert.Equal(t, "water", srcNode.Fluid.Name)

	// Id counters survive the round trip.
	newID := loaded.AddNode(&network.Node{Label: "added"})
	assert.Equal(t, network.NodeID(5), newID)
}

func TestLatestSnapshot(t *testing.T) {
	db := openTestDB(t)

	empty, err := db.LatestSnapshot()
	require.NoError(t, err)
	assert.Nil(t, empty, "empty store yields no snapshot")

	first, _ := network.Sample()
	_, err = db.SaveSnapshot("first", first)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // distinct created_at ordering

	second := network.New()
	second.AddNode(&network.Node{Label: "solo"})
	_, err = db.SaveSnapshot("second", second)
	require.NoError(t, err)

	latest, err := db.LatestSnapshot()
	require.NoError(t, err)
	assert.Len(t, latest.Nodes, 1)
}

func TestListAndDelete(t *testing.T) {
	db := openTestDB(t)
	net, _ := network.Sample()

	a, err := db.SaveSnapshot("a", net)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = db.SaveSnapshot("b", net)
	require.NoError(t, err)

	infos, err := db.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, infos, 2)
	assert.Equal(t, "b", infos[0].Name, "newest first")

	require.NoError(t, db.DeleteSnapshot(a))
	infos, err = db.ListSnapshots()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SetMeta("active_snapshot", "abc"))
	require.NoError(t, db.SetMeta("active_snapshot", "def"))

	v, err := db.GetMeta("active_snapshot")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	_, err = db.GetMeta("missing")
	require.Error(t, err)
}
