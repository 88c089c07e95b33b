// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storeuc

import (
	"context"
	"fmt"
	"sync"

	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
)

// Collection is the in-memory mirror of one remote entity collection.
// It is safe to be used concurrently. The mutex is never held while
// the remote API is being called, so concurrent operations may
// complete in any order. For example, two concurrent Create calls
// prepend their entities in the order of their completion.
//
// Items are kept in the order which was returned by the last refresh
// (i.e., the most recently created first) and each identifier appears
// at most once.
type Collection[E model.Entity] struct {
	remote   Remote[E]
	notifier Notifier

	mu      sync.RWMutex
	items   []E
	subs    map[int]func([]E)
	lastSub int

	// emitMu serializes reconciliations with their subscribers calls.
	// It is always locked before mu.
	emitMu sync.Mutex
}

// NewCollection creates an empty Collection which mirrors the remote
// entities and reports its outcomes to the notifier n.
// Call Refresh in order to load the remote entities.
func NewCollection[E model.Entity](
	remote Remote[E], n Notifier,
) *Collection[E] {
	return &Collection[E]{
		remote:   remote,
		notifier: n,
		subs:     make(map[int]func([]E)),
	}
}

// Kind returns the kind of entities in this collection.
func (c *Collection[E]) Kind() model.Kind {
	return c.remote.Kind()
}

// Items returns a copy of the current entities.
func (c *Collection[E]) Items() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]E(nil), c.items...)
}

// Len returns the number of current entities.
func (c *Collection[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the entity which is identified by id and true, or a zero
// entity and false if no such entity is loaded.
func (c *Collection[E]) Get(id string) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := indexOf(c.items, id); i >= 0 {
		return c.items[i], true
	}
	var zero E
	return zero, false
}

// Subscribe registers f in order to be called with a copy of the
// entities after each reconciliation. Calls are made in the order of
// reconciliations and from the goroutine which performed them. The f
// function may read this collection, but it must not call its
// mutators synchronously. The returned cancel function unregisters f.
func (c *Collection[E]) Subscribe(f func([]E)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSub++
	id := c.lastSub
	c.subs[id] = f
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Refresh fetches all remote entities and replaces the in-memory ones
// wholesale, keeping the server order. On failure, the in-memory
// entities are left unchanged, an error notification is emitted, and
// false is returned. The error is not returned since a refresh is a
// best-effort background operation.
func (c *Collection[E]) Refresh(ctx context.Context) bool {
	k := c.Kind()
	items, err := c.remote.List(ctx)
	if err != nil {
		err = &OpError{Verb: VerbFetch, Kind: k, Err: err}
		log.Error(
			ctx, "refreshing collection",
			log.Kind(k), log.Err("err", err),
		)
		c.notifier.Notify(ctx, failure(
			fmt.Sprintf("Failed to fetch %s from server", k), err,
		))
		return false
	}
	items = dedup(items)
	c.reconcile(func([]E) ([]E, bool) {
		return items, true
	})
	c.notifier.Notify(ctx, success(
		fmt.Sprintf("Loaded %d %s", len(items), k),
	))
	return true
}

// Create sends e to the remote API and prepends the returned entity,
// carrying its server assigned identifier and defaults. On failure,
// an *OpError is returned and the in-memory entities are unchanged.
func (c *Collection[E]) Create(ctx context.Context, e E) (E, error) {
	k := c.Kind()
	created, err := c.remote.Create(ctx, e)
	if err != nil {
		var zero E
		return zero, c.fail(ctx, VerbCreate, "add", err)
	}
	id := created.EntityID()
	c.reconcile(func(items []E) ([]E, bool) {
		out := make([]E, 0, len(items)+1)
		out = append(out, created)
		for _, item := range items {
			if item.EntityID() != id {
				out = append(out, item)
			}
		}
		return out, true
	})
	log.Info(ctx, "entity created", log.Kind(k), log.ID(id))
	c.notifier.Notify(ctx, success(k.Title()+" added successfully"))
	return created, nil
}

// Update sends e to the remote API by its identifier and replaces the
// matching in-memory entity with the returned one. If no in-memory
// entity matches, nothing is inserted. On failure, an *OpError is
// returned and the in-memory entities are unchanged.
func (c *Collection[E]) Update(ctx context.Context, e E) (E, error) {
	updated, err := c.update(ctx, e)
	if err != nil {
		var zero E
		return zero, c.fail(ctx, VerbUpdate, "update", err)
	}
	c.notifier.Notify(
		ctx, success(c.Kind().Title()+" updated successfully"),
	)
	return updated, nil
}

// update is the Update operation without its notification, so it may
// be composed in larger operations.
func (c *Collection[E]) update(ctx context.Context, e E) (E, error) {
	updated, err := c.remote.Update(ctx, e)
	if err != nil {
		return updated, err
	}
	id := e.EntityID()
	c.reconcile(func(items []E) ([]E, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		out := append([]E(nil), items...)
		out[i] = updated
		return out, true
	})
	log.Info(ctx, "entity updated", log.Kind(c.Kind()), log.ID(id))
	return updated, nil
}

// Delete asks the remote API to delete the entity which is identified
// by id and removes it from the in-memory entities (if present).
// On failure, including a missing remote entity, an *OpError is
// returned and the in-memory entities are unchanged.
func (c *Collection[E]) Delete(ctx context.Context, id string) error {
	k := c.Kind()
	if err := c.remote.Delete(ctx, id); err != nil {
		return c.fail(ctx, VerbDelete, "delete", err)
	}
	c.reconcile(func(items []E) ([]E, bool) {
		if indexOf(items, id) < 0 {
			return items, false
		}
		out := make([]E, 0, len(items)-1)
		for _, item := range items {
			if item.EntityID() != id {
				out = append(out, item)
			}
		}
		return out, true
	})
	log.Info(ctx, "entity deleted", log.Kind(k), log.ID(id))
	c.notifier.Notify(ctx, success(k.Title()+" deleted successfully"))
	return nil
}

// fail wraps err as an *OpError, logs and notifies it, and returns it.
// The action is the verb which is shown to users, like "add".
func (c *Collection[E]) fail(
	ctx context.Context, v Verb, action string, err error,
) error {
	k := c.Kind()
	opErr := &OpError{Verb: v, Kind: k, Err: err}
	log.Error(
		ctx, "store operation failed",
		log.Kind(k), log.Err("err", opErr),
	)
	c.notifier.Notify(ctx, failure(
		fmt.Sprintf("Failed to %s %s", action, k.Singular()), opErr,
	))
	return opErr
}

// reconcile replaces the items with the result of f and then passes
// a copy of them to the subscribers. The f function must not modify
// its argument in place and reports whether the items were changed.
// Subscribers are not called for unchanged items.
func (c *Collection[E]) reconcile(f func(items []E) ([]E, bool)) {
	// emitMu is taken before mu, so a subscriber may read c while the
	// next reconciliation waits for its turn without holding mu.
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.mu.Lock()
	items, changed := f(c.items)
	if !changed {
		c.mu.Unlock()
		return
	}
	c.items = items
	snapshot := append([]E(nil), c.items...)
	subs := make([]func([]E), 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.mu.Unlock()
	for _, sub := range subs {
		sub(append([]E(nil), snapshot...))
	}
}

func indexOf[E model.Entity](items []E, id string) int {
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// dedup keeps the first occurrence of each identifier.
func dedup[E model.Entity](items []E) []E {
	seen := make(map[string]struct{}, len(items))
	out := make([]E, 0, len(items))
	for _, item := range items {
		id := item.EntityID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, item)
	}
	return out
}
