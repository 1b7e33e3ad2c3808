package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/openagora/agora/internal/types"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Now()
	if today := formatTimestamp(now); len(today) != 5 || !strings.Contains(today, ":") {
		t.Errorf("same-day stamp = %q, want HH:MM", today)
	}
	if old := formatTimestamp(now.AddDate(-1, 0, 0)); len(old) <= 5 {
		t.Errorf("old stamp = %q, want date prefix", old)
	}
}

func TestTruncateLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 6, "hello…"},
		{"zero width", "hello", 0, "hello"},
		{"tiny", "hello", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateLine(tt.line, tt.width); got != tt.want {
				t.Errorf("truncateLine(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
			}
		})
	}
}

func TestIsFenceLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"```go", true},
		{"  ```", true},
		{"~~~", true},
		{"``", false},
		{"plain text", false},
	}
	for _, tt := range tests {
		if got := isFenceLine(tt.line); got != tt.want {
			t.Errorf("isFenceLine(%q) = %v", tt.line, got)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q", got)
	}
}

func TestMentionsSelf(t *testing.T) {
	self := types.User{ID: "u-1", Username: "jane", DisplayName: "Jane Doe"}

	// Server-resolved mention rows win when present.
	withRows := types.MessageWithDetails{
		Message:  types.Message{Content: "no token here"},
		Mentions: []types.Mention{{MentionedUserID: "u-1"}},
	}
	if !mentionsSelf(withRows, self) {
		t.Error("resolved mention row not honored")
	}

	otherRows := types.MessageWithDetails{
		Message:  types.Message{Content: "@jane hello"},
		Mentions: []types.Mention{{MentionedUserID: "u-9"}},
	}
	if mentionsSelf(otherRows, self) {
		t.Error("mention rows present but none ours; content scan must not run")
	}

	// Content scan is the fallback when no rows arrived.
	noRows := types.MessageWithDetails{Message: types.Message{Content: "ping @jane"}}
	if !mentionsSelf(noRows, self) {
		t.Error("content fallback failed")
	}
}

func TestNotificationPreviewTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	preview := notificationPreview(long)
	if len([]rune(preview)) != 120 {
		t.Errorf("preview length = %d", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "…") {
		t.Error("missing ellipsis")
	}
}

func TestFormatReplyCount(t *testing.T) {
	m := testModel()

	root := types.MessageWithDetails{
		Message:          types.Message{ID: "m-1", ChannelID: "ch-1"},
		ThreadReplyCount: 1,
	}
	if line := m.formatReplyCount(root); !strings.Contains(line, "1 reply") {
		t.Errorf("singular form: %q", line)
	}

	root.ThreadReplyCount = 4
	if line := m.formatReplyCount(root); !strings.Contains(line, "4 replies") {
		t.Errorf("plural form: %q", line)
	}

	// Replies never advertise threads of their own.
	threadID := "m-0"
	reply := types.MessageWithDetails{
		Message:          types.Message{ID: "m-2", ThreadID: &threadID},
		ThreadReplyCount: 2,
	}
	if line := m.formatReplyCount(reply); line != "" {
		t.Errorf("reply rendered a thread line: %q", line)
	}
}

func TestHighlightFenceParsing(t *testing.T) {
	fence, lang, ok := parseFence("```go")
	if !ok || fence != "```" || lang != "go" {
		t.Errorf("parseFence = %q %q %v", fence, lang, ok)
	}
	if _, _, ok := parseFence("``not a fence"); ok {
		t.Error("two backticks accepted")
	}

	lines := []string{"```", "code", "```", "after"}
	if end := findClosingFence(lines, 1, "```"); end != 2 {
		t.Errorf("closing fence at %d", end)
	}
	if end := findClosingFence([]string{"code only"}, 0, "```"); end != -1 {
		t.Error("found fence where none exists")
	}
}

func TestHighlightLeavesUnclosedFenceAlone(t *testing.T) {
	body := "```go\nfunc main() {}"
	if got := highlightCodeBlocks(body); got != body {
		t.Errorf("unclosed fence rewritten: %q", got)
	}
}
