package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
)

func fillViewport(m *Model, height, lineCount int) {
	m.viewport = viewport.New(80, height)
	lines := make([]string, lineCount)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func TestAtBottomWhileScrolledUp(t *testing.T) {
	m := testModel()
	fillViewport(m, 5, 40)

	m.viewport.SetYOffset(0)
	if m.atBottom() {
		t.Error("scrolled to top reported as bottom")
	}

	m.viewport.GotoBottom()
	if !m.atBottom() {
		t.Error("bottom not detected after GotoBottom")
	}
}

func TestAtBottomNearBottomSlack(t *testing.T) {
	m := testModel()
	fillViewport(m, 5, 40)
	maxOffset := 40 - 5

	m.viewport.SetYOffset(maxOffset - 2)
	if !m.atBottom() {
		t.Error("within slack not treated as bottom")
	}

	m.viewport.SetYOffset(maxOffset - 4)
	if m.atBottom() {
		t.Error("outside slack treated as bottom")
	}
}

func TestAtBottomShortContent(t *testing.T) {
	m := testModel()
	fillViewport(m, 10, 3)
	if !m.atBottom() {
		t.Error("content shorter than the viewport must count as bottom")
	}
}

func TestAddNewMessageAuthorDedups(t *testing.T) {
	m := testModel()
	m.addNewMessageAuthor("jane")
	m.addNewMessageAuthor("bob")
	m.addNewMessageAuthor("jane")
	if len(m.newMsgAuthors) != 2 {
		t.Errorf("authors = %v, want 2 distinct", m.newMsgAuthors)
	}
	m.clearNewMessageNotification()
	if len(m.newMsgAuthors) != 0 {
		t.Error("notification not cleared")
	}
}
