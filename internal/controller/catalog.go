// Package controller implements the UI-side synchronization contract:
// each controller owns its local list, talks to the backend through the
// injected client, and signals dependents through reload counters
// instead of shared state.
package controller

import (
	"context"
	"fmt"

	"gametracker/backend/internal/client"
)

// ConfirmFunc asks the user a yes/no question before a destructive
// action. Injected so tests can stub the decision.
type ConfirmFunc func(prompt string) bool

// Catalog orchestrates the game list view. It holds the authoritative
// in-memory copy of the catalog, replaced wholesale on every load.
type Catalog struct {
	api     *client.Client
	confirm ConfirmFunc

	games   []client.Game
	loadErr error
	reload  int
}

// NewCatalog creates a catalog controller.
func NewCatalog(api *client.Client, confirm ConfirmFunc) *Catalog {
	return &Catalog{api: api, confirm: confirm}
}

// Load fetches the full game list. On success the in-memory list is
// replaced; on failure the error state is set and the previous list is
// left alone so the view can halt instead of mixing stale and new data.
func (c *Catalog) Load(ctx context.Context) error {
	games, err := c.api.ListGames(ctx)
	if err != nil {
		c.loadErr = err
		return err
	}

	c.games = games
	c.loadErr = nil
	return nil
}

// Games returns the current in-memory list.
func (c *Catalog) Games() []client.Game {
	return c.games
}

// Err returns the error from the last failed load, or nil.
func (c *Catalog) Err() error {
	return c.loadErr
}

// ReloadKey is a counter bumped after every completed mutation.
// Dependent views refetch when it changes.
func (c *Catalog) ReloadKey() int {
	return c.reload
}

// NotifyChanged bumps the reload key. Called by collaborators (the game
// form) when they complete a mutation.
func (c *Catalog) NotifyChanged() {
	c.reload++
}

// Delete removes a game after explicit confirmation. The item leaves the
// local list only once the server confirms the deletion; a declined
// confirmation issues no request at all.
func (c *Catalog) Delete(ctx context.Context, game client.Game) (bool, error) {
	if !c.confirm(fmt.Sprintf("Are you sure you want to delete %q?", game.Title)) {
		return false, nil
	}

	if err := c.api.DeleteGame(ctx, game.ID); err != nil {
		return false, err
	}

	// A fresh slice so lists handed out earlier keep their contents.
	kept := make([]client.Game, 0, len(c.games))
	for _, g := range c.games {
		if g.ID != game.ID {
			kept = append(kept, g)
		}
	}
	c.games = kept
	c.reload++
	return true, nil
}

// RequestEdit looks up the current record for an edit session. It never
// touches server state; the form receives a copy of the local record.
func (c *Catalog) RequestEdit(id uint) (client.Game, bool) {
	for _, g := range c.games {
		if g.ID == id {
			return g, true
		}
	}
	return client.Game{}, false
}
