package group

import "time"

// Group holds the voting-window configuration for one chat group. Exactly one
// group is active per deployment (latest-group strategy, trusted server-side
// record); the registry resolves it without any client-supplied mapping.
type Group struct {
	ID               string // stable storage key, also used in record IDs
	ChatID           int64  // chat to push announcements to
	AutoVoteStartDay int    // 1..31, inclusive
	AutoVoteEndDay   int    // 1..31, inclusive; start > end means the window wraps
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasVotingWindow reports whether both window bounds are set and in range.
func (g *Group) HasVotingWindow() bool {
	return g.AutoVoteStartDay >= 1 && g.AutoVoteStartDay <= 31 &&
		g.AutoVoteEndDay >= 1 && g.AutoVoteEndDay <= 31
}
