package board

import (
	"testing"

	"github.com/openagora/agora/internal/types"
)

func TestAggregateReactions(t *testing.T) {
	reactions := []types.Reaction{
		{MessageID: "m-1", UserID: "u-1", EmojiCode: "tada"},
		{MessageID: "m-1", UserID: "u-2", EmojiCode: "tada"},
		{MessageID: "m-1", UserID: "u-1", EmojiCode: "eyes"},
		// Same tuple twice; counts distinct users, never rows.
		{MessageID: "m-1", UserID: "u-2", EmojiCode: "tada"},
	}

	pills := AggregateReactions(reactions, "u-1")
	if len(pills) != 2 {
		t.Fatalf("pills = %+v", pills)
	}
	if pills[0].EmojiCode != "tada" || pills[0].Count != 2 || !pills[0].Reacted {
		t.Errorf("tada pill = %+v", pills[0])
	}
	if pills[1].EmojiCode != "eyes" || pills[1].Count != 1 || !pills[1].Reacted {
		t.Errorf("eyes pill = %+v", pills[1])
	}

	pills = AggregateReactions(reactions, "u-3")
	for _, pill := range pills {
		if pill.Reacted {
			t.Errorf("u-3 flagged as reacted on %s", pill.EmojiCode)
		}
	}
}

func TestAggregateReactionsEmpty(t *testing.T) {
	if pills := AggregateReactions(nil, "u-1"); len(pills) != 0 {
		t.Errorf("pills = %+v", pills)
	}
}

func TestAggregateReactionsFirstAppearanceOrder(t *testing.T) {
	reactions := []types.Reaction{
		{UserID: "u-1", EmojiCode: "eyes"},
		{UserID: "u-2", EmojiCode: "tada"},
		{UserID: "u-3", EmojiCode: "eyes"},
	}
	pills := AggregateReactions(reactions, "")
	if pills[0].EmojiCode != "eyes" || pills[1].EmojiCode != "tada" {
		t.Errorf("order = %+v", pills)
	}
}
