package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/openagora/agora/internal/types"
)

func feedMessage(id, channelID, content string) types.MessageWithDetails {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	return types.MessageWithDetails{
		Message: types.Message{
			ID:          id,
			ChannelID:   channelID,
			AuthorID:    "u-1",
			Content:     content,
			MessageType: types.MessageTypeText,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func TestFeedInsertDeduplicates(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", nil)

	msg := feedMessage("m-1", "ch-1", "hi")
	if !feed.ApplyInsert(msg) {
		t.Fatal("first insert rejected")
	}
	// The echoed live event for the optimistic append must lose.
	if feed.ApplyInsert(msg) {
		t.Fatal("duplicate insert accepted")
	}
	if feed.Len() != 1 {
		t.Fatalf("feed has %d entries, want 1", feed.Len())
	}
}

func TestFeedPreservesArrivalOrder(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", nil)

	// Deliberately out of timestamp order; the feed must not re-sort.
	older := feedMessage("m-2", "ch-1", "second event, older timestamp")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	feed.ApplyInsert(feedMessage("m-1", "ch-1", "first event"))
	feed.ApplyInsert(older)

	messages := feed.Messages()
	if messages[0].ID != "m-1" || messages[1].ID != "m-2" {
		t.Errorf("order = %s, %s; want m-1, m-2", messages[0].ID, messages[1].ID)
	}
}

func TestFeedDiscardsOtherChannels(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", []types.MessageWithDetails{feedMessage("m-1", "ch-1", "a")})

	if feed.ApplyInsert(feedMessage("m-2", "ch-2", "stray")) {
		t.Error("insert for another channel accepted")
	}
	if feed.Len() != 1 {
		t.Errorf("feed has %d entries, want 1", feed.Len())
	}
}

func TestFeedUpdate(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", []types.MessageWithDetails{feedMessage("m-1", "ch-1", "before")})

	patch := feedMessage("m-1", "ch-1", "after").Message
	patch.UpdatedAt = patch.UpdatedAt.Add(time.Minute)
	if !feed.ApplyUpdate(patch) {
		t.Fatal("update rejected")
	}
	got, _ := feed.Get("m-1")
	if got.Content != "after" || !got.Edited() {
		t.Errorf("content = %q edited = %v", got.Content, got.Edited())
	}

	// Update for an unloaded message is dropped, not queued.
	if feed.ApplyUpdate(feedMessage("m-404", "ch-1", "x").Message) {
		t.Error("update for unknown id accepted")
	}
}

func TestFeedSoftDelete(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", []types.MessageWithDetails{
		feedMessage("m-1", "ch-1", "a"),
		feedMessage("m-2", "ch-1", "b"),
		feedMessage("m-3", "ch-1", "c"),
	})

	if !feed.ApplyDelete("m-2") {
		t.Fatal("delete rejected")
	}
	if _, ok := feed.Get("m-2"); ok {
		t.Error("deleted message still visible")
	}
	// Index survives the removal.
	if got, ok := feed.Get("m-3"); !ok || got.ID != "m-3" {
		t.Error("index broken after removal")
	}

	// An update event carrying deleted_at also removes.
	deletedAt := time.Now()
	patch := feedMessage("m-1", "ch-1", "a").Message
	patch.DeletedAt = &deletedAt
	feed.ApplyUpdate(patch)
	if _, ok := feed.Get("m-1"); ok {
		t.Error("soft-deleted message still visible")
	}
}

func TestFeedReplaceFiltersDeleted(t *testing.T) {
	deletedAt := time.Now()
	deleted := feedMessage("m-2", "ch-1", "gone")
	deleted.DeletedAt = &deletedAt

	feed := NewFeed()
	feed.Replace("ch-1", []types.MessageWithDetails{feedMessage("m-1", "ch-1", "a"), deleted})
	if feed.Len() != 1 {
		t.Errorf("feed has %d entries, want 1", feed.Len())
	}
}

func TestFeedChannelSwitchIsolation(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-a", []types.MessageWithDetails{feedMessage("m-1", "ch-a", "in A")})

	// Switch to channel B.
	feed.Replace("ch-b", []types.MessageWithDetails{feedMessage("m-2", "ch-b", "in B")})

	// A live event scoped to A arriving after the switch must not mutate B.
	if feed.ApplyInsert(feedMessage("m-3", "ch-a", "late for A")) {
		t.Error("stale channel event applied")
	}
	if _, ok := feed.Get("m-1"); ok {
		t.Error("previous channel's message leaked")
	}
	if feed.Len() != 1 || feed.Messages()[0].ID != "m-2" {
		t.Errorf("feed = %v", feed.Messages())
	}
}

func TestFeedReactionToggleIdempotent(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", []types.MessageWithDetails{feedMessage("m-1", "ch-1", "a")})

	reaction := types.Reaction{ID: "r-1", MessageID: "m-1", UserID: "u-2", EmojiCode: "tada"}

	if !feed.ApplyReactionAdded(reaction) {
		t.Fatal("add rejected")
	}
	// The live echo of the toggle result is a no-op.
	if feed.ApplyReactionAdded(reaction) {
		t.Error("duplicate tuple accepted")
	}
	got, _ := feed.Get("m-1")
	pills := AggregateReactions(got.Reactions, "u-2")
	if len(pills) != 1 || pills[0].Count != 1 || !pills[0].Reacted {
		t.Errorf("pills = %+v", pills)
	}

	// Second toggle returns to the original state.
	if !feed.ApplyReactionRemoved("m-1", "u-2", "tada") {
		t.Fatal("remove rejected")
	}
	if feed.ApplyReactionRemoved("m-1", "u-2", "tada") {
		t.Error("removing an absent tuple reported a change")
	}
	got, _ = feed.Get("m-1")
	if len(AggregateReactions(got.Reactions, "u-2")) != 0 {
		t.Error("aggregate not back to original")
	}
}

func TestFeedReactionForAbsentMessageDiscarded(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", nil)

	reaction := types.Reaction{MessageID: "m-elsewhere", UserID: "u-1", EmojiCode: "eyes"}
	if feed.ApplyReactionAdded(reaction) {
		t.Error("reaction for absent message applied")
	}
}

func TestFeedBumpReplyCount(t *testing.T) {
	feed := NewFeed()
	feed.Replace("ch-1", []types.MessageWithDetails{feedMessage("m-1", "ch-1", "root")})

	feed.BumpReplyCount("m-1", 1)
	got, _ := feed.Get("m-1")
	if got.ThreadReplyCount != 1 {
		t.Errorf("reply count = %d", got.ThreadReplyCount)
	}
	feed.BumpReplyCount("m-1", -2)
	got, _ = feed.Get("m-1")
	if got.ThreadReplyCount != 0 {
		t.Errorf("reply count clamped = %d", got.ThreadReplyCount)
	}
	if feed.BumpReplyCount("m-404", 1) {
		t.Error("bump for unknown root accepted")
	}
}

func TestFeedManyRemovalsKeepIndexConsistent(t *testing.T) {
	feed := NewFeed()
	var history []types.MessageWithDetails
	for i := 0; i < 10; i++ {
		history = append(history, feedMessage(fmt.Sprintf("m-%d", i), "ch-1", "x"))
	}
	feed.Replace("ch-1", history)

	for _, id := range []string{"m-0", "m-5", "m-9", "m-3"} {
		if !feed.ApplyDelete(id) {
			t.Fatalf("delete %s rejected", id)
		}
	}
	for i, msg := range feed.Messages() {
		got, ok := feed.Get(msg.ID)
		if !ok || got.ID != msg.ID {
			t.Fatalf("index out of sync at %d: %s", i, msg.ID)
		}
	}
}
