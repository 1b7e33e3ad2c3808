package board

import (
	"sort"
	"time"

	"github.com/openagora/agora/internal/types"
)

// TypingExpiry is how long a typing broadcast stays visible with no
// follow-up keystroke. Senders auto-broadcast a stop after the same period
// of silence; the receiver-side expiry covers a lost stop event.
const TypingExpiry = 3 * time.Second

type typingState struct {
	entry  types.TypingEntry
	lastAt time.Time
}

// TypingTracker holds the ephemeral set of users typing in one channel.
// Purely additive and subtractive; no ordering or durability guarantees.
type TypingTracker struct {
	channelID string
	states    map[string]typingState
}

// NewTypingTracker returns a tracker attached to no channel.
func NewTypingTracker() *TypingTracker {
	return &TypingTracker{states: make(map[string]typingState)}
}

// Reset attaches the tracker to a channel and clears all state.
func (t *TypingTracker) Reset(channelID string) {
	t.channelID = channelID
	t.states = make(map[string]typingState)
}

// ChannelID returns the channel the tracker is attached to.
func (t *TypingTracker) ChannelID() string { return t.channelID }

// Start records a typing broadcast, refreshing the expiry on repeats.
func (t *TypingTracker) Start(entry types.TypingEntry, now time.Time) {
	t.states[entry.UserID] = typingState{entry: entry, lastAt: now}
}

// Stop removes a user on an explicit stop-typing broadcast.
func (t *TypingTracker) Stop(userID string) {
	delete(t.states, userID)
}

// Active returns the users still typing as of now, pruning expired entries
// as a side effect. Sorted by username for stable rendering.
func (t *TypingTracker) Active(now time.Time) []types.TypingEntry {
	var active []types.TypingEntry
	for userID, state := range t.states {
		if now.Sub(state.lastAt) >= TypingExpiry {
			delete(t.states, userID)
			continue
		}
		active = append(active, state.entry)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Username < active[j].Username
	})
	return active
}
