package board

import (
	"sort"

	"github.com/openagora/agora/internal/types"
)

// PresenceTracker holds the ephemeral online set for one channel, keyed by
// connection so the same user on two sessions stays online until both leave.
// It is driven entirely by sync/join/leave events and persists nothing.
type PresenceTracker struct {
	channelID string
	entries   map[string]types.PresenceEntry
}

// NewPresenceTracker returns a tracker attached to no channel.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{entries: make(map[string]types.PresenceEntry)}
}

// ChannelID returns the channel the tracker is attached to.
func (p *PresenceTracker) ChannelID() string { return p.channelID }

// Reset attaches the tracker to a channel and clears all state. Called on
// channel switch; the previous channel's set must not bleed through.
func (p *PresenceTracker) Reset(channelID string) {
	p.channelID = channelID
	p.entries = make(map[string]types.PresenceEntry)
}

// Sync replaces the whole set from a presence sync event.
func (p *PresenceTracker) Sync(entries map[string]types.PresenceEntry) {
	p.entries = make(map[string]types.PresenceEntry, len(entries))
	for key, entry := range entries {
		p.entries[key] = entry
	}
}

// Join records a connection joining the channel's presence topic.
func (p *PresenceTracker) Join(connKey string, entry types.PresenceEntry) {
	p.entries[connKey] = entry
}

// Leave removes a connection from the set.
func (p *PresenceTracker) Leave(connKey string) {
	delete(p.entries, connKey)
}

// OnlineUserIDs returns the distinct online user ids, sorted for stable
// rendering.
func (p *PresenceTracker) OnlineUserIDs() []string {
	seen := make(map[string]struct{}, len(p.entries))
	for _, entry := range p.entries {
		seen[entry.UserID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsOnline reports whether any connection for the user is present.
func (p *PresenceTracker) IsOnline(userID string) bool {
	for _, entry := range p.entries {
		if entry.UserID == userID {
			return true
		}
	}
	return false
}

// Count returns the number of distinct online users.
func (p *PresenceTracker) Count() int {
	return len(p.OnlineUserIDs())
}
