package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Key prefixes
const (
	cartKeyPrefix        = "cart:"
	preferencesKeyPrefix = "preferences:"
)

// CartStore keeps one ordered, duplicate-free list of course ids per owner.
type CartStore struct {
	mu    sync.Mutex
	store Store
}

func NewCartStore(s Store) *CartStore {
	return &CartStore{store: s}
}

// IDs returns the owner's cart. An unknown owner has an empty cart.
func (c *CartStore) IDs(ctx context.Context, owner string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ids(ctx, owner)
}

// Add appends id to the cart. Returns ErrDuplicate if it is already there.
func (c *CartStore) Add(ctx context.Context, owner string, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.ids(ctx, owner)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return fmt.Errorf("%w: %s", ErrDuplicate, id)
		}
	}
	return c.save(ctx, owner, append(ids, id))
}

// Remove drops id from the cart. Returns ErrNotFound if it is not there.
func (c *CartStore) Remove(ctx context.Context, owner string, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.ids(ctx, owner)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.save(ctx, owner, kept)
}

func (c *CartStore) Clear(ctx context.Context, owner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Remove(ctx, cartKeyPrefix+owner)
}

// SavePreferences stores the owner's last recommendation form.
func (c *CartStore) SavePreferences(ctx context.Context, owner string, prefs model.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return c.store.Set(ctx, preferencesKeyPrefix+owner, data)
}

// Preferences returns ErrNotFound when nothing was saved.
func (c *CartStore) Preferences(ctx context.Context, owner string) (model.Preferences, error) {
	var prefs model.Preferences
	data, err := c.store.Get(ctx, preferencesKeyPrefix+owner)
	if err != nil {
		return prefs, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

func (c *CartStore) ids(ctx context.Context, owner string) ([]string, error) {
	data, err := c.store.Get(ctx, cartKeyPrefix+owner)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (c *CartStore) save(ctx context.Context, owner string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return c.store.Set(ctx, cartKeyPrefix+owner, data)
}
