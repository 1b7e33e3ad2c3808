package board

import (
	"reflect"
	"testing"
	"time"

	"github.com/openagora/agora/internal/types"
)

func TestPresenceSyncJoinLeave(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Reset("ch-1")

	tracker.Sync(map[string]types.PresenceEntry{
		"conn-a": {UserID: "u-1", Username: "jane"},
		"conn-b": {UserID: "u-2", Username: "john"},
	})
	if got := tracker.OnlineUserIDs(); !reflect.DeepEqual(got, []string{"u-1", "u-2"}) {
		t.Errorf("online = %v", got)
	}

	tracker.Join("conn-c", types.PresenceEntry{UserID: "u-3", Username: "ana", OnlineAt: time.Now()})
	if !tracker.IsOnline("u-3") {
		t.Error("joined user not online")
	}

	tracker.Leave("conn-a")
	if tracker.IsOnline("u-1") {
		t.Error("left user still online")
	}
}

func TestPresenceMultipleConnectionsPerUser(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Reset("ch-1")

	tracker.Join("conn-a", types.PresenceEntry{UserID: "u-1", Username: "jane"})
	tracker.Join("conn-b", types.PresenceEntry{UserID: "u-1", Username: "jane"})
	if tracker.Count() != 1 {
		t.Errorf("count = %d, want distinct users", tracker.Count())
	}

	tracker.Leave("conn-a")
	if !tracker.IsOnline("u-1") {
		t.Error("user offline while a session remains")
	}
	tracker.Leave("conn-b")
	if tracker.IsOnline("u-1") {
		t.Error("user online after last session left")
	}
}

func TestPresenceResetOnChannelSwitch(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Reset("ch-1")
	tracker.Join("conn-a", types.PresenceEntry{UserID: "u-1"})

	tracker.Reset("ch-2")
	if tracker.Count() != 0 {
		t.Error("previous channel's presence bled through")
	}
	if tracker.ChannelID() != "ch-2" {
		t.Errorf("channel = %q", tracker.ChannelID())
	}
}

func TestTypingExpiry(t *testing.T) {
	tracker := NewTypingTracker()
	tracker.Reset("ch-1")
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	tracker.Start(types.TypingEntry{UserID: "u-1", Username: "jane"}, start)

	if got := tracker.Active(start.Add(time.Second)); len(got) != 1 {
		t.Fatalf("active = %v", got)
	}
	// A broadcast with no follow-up clears after three seconds.
	if got := tracker.Active(start.Add(TypingExpiry)); len(got) != 0 {
		t.Errorf("active after expiry = %v", got)
	}
	// Expired entries are pruned, not just hidden.
	tracker.Start(types.TypingEntry{UserID: "u-2", Username: "john"}, start.Add(TypingExpiry))
	if got := tracker.Active(start.Add(TypingExpiry + time.Second)); len(got) != 1 || got[0].UserID != "u-2" {
		t.Errorf("active = %v", got)
	}
}

func TestTypingRefreshAndStop(t *testing.T) {
	tracker := NewTypingTracker()
	tracker.Reset("ch-1")
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	tracker.Start(types.TypingEntry{UserID: "u-1", Username: "jane"}, start)
	// Each keystroke refreshes the expiry window.
	tracker.Start(types.TypingEntry{UserID: "u-1", Username: "jane"}, start.Add(2*time.Second))
	if got := tracker.Active(start.Add(4 * time.Second)); len(got) != 1 {
		t.Errorf("refreshed entry expired early: %v", got)
	}

	// Explicit stop clears immediately.
	tracker.Stop("u-1")
	if got := tracker.Active(start.Add(4 * time.Second)); len(got) != 0 {
		t.Errorf("active after stop = %v", got)
	}
}

func TestTypingSortedByUsername(t *testing.T) {
	tracker := NewTypingTracker()
	tracker.Reset("ch-1")
	now := time.Now()

	tracker.Start(types.TypingEntry{UserID: "u-2", Username: "zoe"}, now)
	tracker.Start(types.TypingEntry{UserID: "u-1", Username: "ana"}, now)

	got := tracker.Active(now)
	if len(got) != 2 || got[0].Username != "ana" || got[1].Username != "zoe" {
		t.Errorf("active = %v", got)
	}
}
