// Package cart holds the per-operator distribution cart: an ordered
// collection of approved submissions waiting for a batched payout. Every
// mutation persists the whole collection, so the cart survives restarts the
// same way it survived page reloads for the dashboard it replaced.
package cart

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type Container struct {
	store Store
}

func NewContainer(store Store) *Container {
	return &Container{store: store}
}

func (c *Container) Items(ctx context.Context, owner string) []model.CartItem {
	items, err := c.store.Load(ctx, owner)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot load cart of %s: %v", owner, err)
		return nil
	}

	return items
}

// Add appends the item unless one with the same submission id is already
// present; the first added item wins.
func (c *Container) Add(ctx context.Context, owner string, item model.CartItem) []model.CartItem {
	items := c.Items(ctx, owner)
	for _, existing := range items {
		if existing.SubmissionID == item.SubmissionID {
			return items
		}
	}

	items = append(items, item)
	c.save(ctx, owner, items)
	return items
}

func (c *Container) Remove(ctx context.Context, owner, submissionID string) []model.CartItem {
	items := c.Items(ctx, owner)
	remaining := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.SubmissionID != submissionID {
			remaining = append(remaining, item)
		}
	}

	if len(remaining) != len(items) {
		c.save(ctx, owner, remaining)
	}

	return remaining
}

// UpdateAmount overrides the amount of an existing item. Unknown ids are
// ignored.
func (c *Container) UpdateAmount(
	ctx context.Context, owner, submissionID, amount string,
) []model.CartItem {
	items := c.Items(ctx, owner)
	changed := false
	for i := range items {
		if items[i].SubmissionID == submissionID {
			items[i].Amount = amount
			changed = true
		}
	}

	if changed {
		c.save(ctx, owner, items)
	}

	return items
}

func (c *Container) Contains(ctx context.Context, owner, submissionID string) bool {
	for _, item := range c.Items(ctx, owner) {
		if item.SubmissionID == submissionID {
			return true
		}
	}

	return false
}

func (c *Container) Clear(ctx context.Context, owner string) {
	if err := c.store.Clear(ctx, owner); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear cart of %s: %v", owner, err)
	}
}

func (c *Container) save(ctx context.Context, owner string, items []model.CartItem) {
	if err := c.store.Save(ctx, owner, items); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot save cart of %s: %v", owner, err)
	}
}
