package group

import "context"

// Repository defines the group registry.
type Repository interface {
	// GetActive returns the single active group, or ErrGroupNotFound when
	// none has been registered yet.
	GetActive(ctx context.Context) (*Group, error)

	// Save upserts a group. Saving with IsActive set deactivates every other
	// group in the same statement sequence (single-active-group invariant).
	Save(ctx context.Context, g *Group) error

	// UpdateWindow changes the voting window of an existing group.
	UpdateWindow(ctx context.Context, groupID string, startDay, endDay int) error
}
