package controller

import (
	"context"
	"testing"

	"gametracker/backend/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLoadReplacesList(t *testing.T) {
	backend := newFakeBackend(t)
	backend.addGame(client.Game{Title: "Hades"})
	backend.addGame(client.Game{Title: "Celeste"})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))

	require.Len(t, catalog.Games(), 2)
	assert.NoError(t, catalog.Err())
}

func TestCatalogLoadIdempotent(t *testing.T) {
	backend := newFakeBackend(t)
	backend.addGame(client.Game{Title: "Hades"})
	backend.addGame(client.Game{Title: "Celeste"})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))
	first := catalog.Games()

	require.NoError(t, catalog.Load(context.Background()))
	second := catalog.Games()

	// Unchanged remote state yields an identical local list.
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, first, second)
}

func TestCatalogLoadFailureHalts(t *testing.T) {
	backend := newFakeBackend(t)
	backend.addGame(client.Game{Title: "Hades"})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))

	backend.failList = true
	err := catalog.Load(context.Background())
	require.Error(t, err)
	assert.Error(t, catalog.Err())
	// The previous list is untouched; no stale/new mix.
	assert.Len(t, catalog.Games(), 1)
}

func TestCatalogDeleteDeclined(t *testing.T) {
	backend := newFakeBackend(t)
	game := backend.addGame(client.Game{Title: "Hades"})

	catalog := NewCatalog(backend.client(), confirmNo)
	require.NoError(t, catalog.Load(context.Background()))
	reloadBefore := catalog.ReloadKey()

	deleted, err := catalog.Delete(context.Background(), game)
	require.NoError(t, err)
	assert.False(t, deleted)

	// No request was issued, nothing changed anywhere.
	assert.Zero(t, backend.callCount("DELETE "))
	assert.Len(t, backend.games, 1)
	assert.Len(t, catalog.Games(), 1)
	assert.Equal(t, reloadBefore, catalog.ReloadKey())
}

func TestCatalogDeleteConfirmed(t *testing.T) {
	backend := newFakeBackend(t)
	keep := backend.addGame(client.Game{Title: "Hades"})
	doomed := backend.addGame(client.Game{Title: "Anthem"})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))
	reloadBefore := catalog.ReloadKey()

	deleted, err := catalog.Delete(context.Background(), doomed)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Removed from the local list without a full reload.
	assert.Equal(t, 1, backend.callCount("DELETE "))
	assert.Equal(t, 1, backend.callCount("GET /api/games"))
	require.Len(t, catalog.Games(), 1)
	assert.Equal(t, keep.ID, catalog.Games()[0].ID)
	assert.Greater(t, catalog.ReloadKey(), reloadBefore)
}

func TestCatalogDeleteLeavesEarlierSnapshotIntact(t *testing.T) {
	backend := newFakeBackend(t)
	doomed := backend.addGame(client.Game{Title: "Anthem"})
	keep := backend.addGame(client.Game{Title: "Hades"})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))
	snapshot := catalog.Games()

	deleted, err := catalog.Delete(context.Background(), doomed)
	require.NoError(t, err)
	require.True(t, deleted)

	// A list handed out before the delete keeps its elements.
	require.Len(t, snapshot, 2)
	assert.Equal(t, doomed.ID, snapshot[0].ID)
	assert.Equal(t, keep.ID, snapshot[1].ID)
}

func TestCatalogDeleteFailureKeepsList(t *testing.T) {
	backend := newFakeBackend(t)
	game := backend.addGame(client.Game{Title: "Hades"})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))

	backend.failMutation = true
	deleted, err := catalog.Delete(context.Background(), game)
	require.Error(t, err)
	assert.False(t, deleted)

	// Not optimistically removed.
	assert.Len(t, catalog.Games(), 1)
}

func TestCatalogRequestEdit(t *testing.T) {
	backend := newFakeBackend(t)
	game := backend.addGame(client.Game{Title: "Hades", Platform: []string{"PC"}})

	catalog := NewCatalog(backend.client(), confirmYes)
	require.NoError(t, catalog.Load(context.Background()))

	record, ok := catalog.RequestEdit(game.ID)
	require.True(t, ok)
	assert.Equal(t, "Hades", record.Title)

	// Looking up a record mutates nothing remotely.
	assert.Equal(t, 1, len(backend.calls))

	_, ok = catalog.RequestEdit(999)
	assert.False(t, ok)
}
