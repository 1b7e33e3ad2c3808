package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/openagora/agora/internal/board"
	"github.com/openagora/agora/internal/types"
)

func keyUp() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyUp} }
func keyDown() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyDown} }

func testModel() *Model {
	m := &Model{
		directory:       board.NewDirectory(),
		feed:            board.NewFeed(),
		thread:          board.NewThreadView(),
		presence:        board.NewPresenceTracker(),
		typing:          board.NewTypingTracker(),
		input:           newInputModel(),
		zones:           zone.New(),
		suggestionIndex: -1,
		unread:          make(map[string]int),
		self:            types.User{ID: "u-self", Username: "me", DisplayName: "Me"},
	}
	m.input.SetWidth(80)
	return m
}

func directoryUsers() []types.User {
	return []types.User{
		{ID: "u-1", Username: "jane", DisplayName: "Jane Doe"},
		{ID: "u-2", Username: "john", DisplayName: "John Smith"},
		{ID: "u-3", Username: "janet", DisplayName: "Janet Jones"},
		{ID: "u-4", Username: "bob", DisplayName: "Bob"},
	}
}

func TestRefreshSuggestionsFiltersByToken(t *testing.T) {
	m := testModel()
	m.mentionPool = directoryUsers()

	m.input.SetValue("hey @jan")
	m.input.CursorEnd()
	m.refreshSuggestions()

	if m.suggestionKind != suggestionMention {
		t.Fatalf("kind = %d", m.suggestionKind)
	}
	if len(m.suggestions) != 2 {
		t.Fatalf("got %d suggestions: %+v", len(m.suggestions), m.suggestions)
	}
	for _, item := range m.suggestions {
		if !strings.Contains(strings.ToLower(item.Display), "jan") {
			t.Errorf("unexpected candidate %q", item.Display)
		}
	}
}

func TestRefreshSuggestionsCapped(t *testing.T) {
	m := testModel()
	for i := 0; i < 20; i++ {
		m.mentionPool = append(m.mentionPool, types.User{
			ID:          "u-" + string(rune('a'+i)),
			Username:    "user" + string(rune('a'+i)),
			DisplayName: "User " + string(rune('A'+i)),
		})
	}

	m.input.SetValue("@user")
	m.input.CursorEnd()
	m.refreshSuggestions()

	if len(m.suggestions) != suggestionLimit {
		t.Errorf("got %d suggestions, want cap %d", len(m.suggestions), suggestionLimit)
	}
}

func TestRefreshSuggestionsClearsWhenTokenGone(t *testing.T) {
	m := testModel()
	m.mentionPool = directoryUsers()

	m.input.SetValue("@jan")
	m.input.CursorEnd()
	m.refreshSuggestions()
	if len(m.suggestions) == 0 {
		t.Fatal("expected suggestions")
	}

	// Whitespace ends the token.
	m.input.SetValue("@jan ")
	m.input.CursorEnd()
	m.refreshSuggestions()
	if len(m.suggestions) != 0 {
		t.Errorf("suggestions survived token end: %+v", m.suggestions)
	}
}

func TestApplySuggestionInsertsDisplayName(t *testing.T) {
	m := testModel()
	m.mentionPool = directoryUsers()

	m.input.SetValue("ping @jane")
	m.input.CursorEnd()
	m.refreshSuggestions()
	if len(m.suggestions) == 0 {
		t.Fatal("expected a candidate for 'jane'")
	}

	m.applySuggestion(m.suggestions[0])
	got := m.input.Value()
	if got != "ping @Jane Doe " {
		t.Errorf("composer = %q", got)
	}
	if len(m.suggestions) != 0 {
		t.Error("suggestions not cleared after apply")
	}
}

func TestApplySuggestionMidTextKeepsCursor(t *testing.T) {
	m := testModel()
	m.mentionPool = directoryUsers()

	m.input.SetValue("ping @jane tail")
	m.setInputCursor(len([]rune("ping @jane")))
	m.refreshSuggestions()
	if len(m.suggestions) == 0 {
		t.Fatal("expected a candidate for 'jane'")
	}

	m.applySuggestion(m.suggestions[0])
	if got := m.input.Value(); got != "ping @Jane Doe  tail" {
		t.Fatalf("composer = %q", got)
	}
	// Cursor sits just past the inserted token, not at the end of the text.
	if got, want := m.inputCursorPos(), len([]rune("ping @Jane Doe ")); got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestSetInputCursorMultiline(t *testing.T) {
	m := testModel()
	m.input.SetValue("first\nsecond\nthird")

	m.setInputCursor(len([]rune("first\nsec")))
	if got, want := m.inputCursorPos(), len([]rune("first\nsec")); got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}

	// Clamped at both ends.
	m.setInputCursor(-5)
	if got := m.inputCursorPos(); got != 0 {
		t.Errorf("cursor after negative set = %d", got)
	}
	m.setInputCursor(1000)
	if got, want := m.inputCursorPos(), len([]rune(m.input.Value())); got != want {
		t.Errorf("cursor after overflow set = %d, want %d", got, want)
	}
}

func TestSuggestionCycling(t *testing.T) {
	m := testModel()
	m.suggestions = []suggestionItem{{Display: "a"}, {Display: "b"}, {Display: "c"}}
	m.suggestionIndex = 0

	// Down wraps bottom to top, Up wraps top to bottom.
	m.suggestionIndex = 2
	if handled, _ := m.handleSuggestionKeys(keyDown()); !handled {
		t.Fatal("down not handled")
	}
	if m.suggestionIndex != 0 {
		t.Errorf("down wrap index = %d", m.suggestionIndex)
	}
	if handled, _ := m.handleSuggestionKeys(keyUp()); !handled {
		t.Fatal("up not handled")
	}
	if m.suggestionIndex != 2 {
		t.Errorf("up wrap index = %d", m.suggestionIndex)
	}
}

func TestCommandSuggestions(t *testing.T) {
	m := testModel()
	m.input.SetValue("/del")
	m.input.CursorEnd()
	m.refreshSuggestions()

	if m.suggestionKind != suggestionCommand {
		t.Fatalf("kind = %d", m.suggestionKind)
	}
	found := false
	for _, item := range m.suggestions {
		if item.Insert == "/delete-channel" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing /delete-channel in %+v", m.suggestions)
	}
}
