package member

import (
	"context"
	"time"
)

// Profile is the display identity of a group member, captured from the chat
// platform when the member first interacts with the bot.
type Profile struct {
	UserID      string
	DisplayName string
	AvatarURL   string
	UpdatedAt   time.Time
}

// Repository stores and resolves member display profiles. Resolution is a
// best-effort concern: callers ranking vote results render unresolvable IDs
// as a placeholder instead of failing.
type Repository interface {
	Upsert(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, userID string) (*Profile, error)
}
