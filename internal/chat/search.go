package chat

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openagora/agora/internal/types"
)

const (
	searchDebounce = 300 * time.Millisecond
	searchMinChars = 2
	searchLimit    = 20
)

type searchDebounceMsg struct {
	seq int
}

type searchResultMsg struct {
	seq    int
	result *types.SearchResult
	err    error
}

// startSearch opens the search overlay. Each keystroke bumps a sequence
// number; only the debounce tick carrying the latest sequence fires a
// request, and only the response carrying it may render.
func (m *Model) startSearch(query string) {
	m.searchActive = true
	m.searchQuery = query
	m.searchResults = nil
	m.searchIndex = 0
	m.clearSuggestions()
}

func (m *Model) exitSearch() {
	m.searchActive = false
	m.searchQuery = ""
	m.searchResults = nil
	m.searchIndex = 0
}

func (m *Model) queueSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	if len(strings.TrimSpace(m.searchQuery)) < searchMinChars {
		m.searchResults = nil
		return nil
	}
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (m *Model) handleSearchDebounceMsg(msg searchDebounceMsg) tea.Cmd {
	if !m.searchActive || msg.seq != m.searchSeq {
		return nil // superseded by later keystrokes
	}
	query := strings.TrimSpace(m.searchQuery)
	if len(query) < searchMinChars {
		return nil
	}
	seq := msg.seq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		result, err := m.gateway.SearchBoard(ctx, query, searchLimit)
		return searchResultMsg{seq: seq, result: result, err: err}
	}
}

func (m *Model) handleSearchResultMsg(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if !m.searchActive || msg.seq != m.searchSeq {
		return m, nil
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	m.searchResults = msg.result
	m.searchIndex = 0
	return m, nil
}

// searchHits flattens the result sections into one selectable list:
// channels first, then messages. Category hits only label their channels.
func (m *Model) searchHits() []searchHit {
	if m.searchResults == nil {
		return nil
	}
	var hits []searchHit
	for _, channel := range m.searchResults.Channels {
		hits = append(hits, searchHit{
			channelID: channel.ID,
			label:     "# " + channel.Name,
		})
	}
	for _, message := range m.searchResults.Messages {
		label := "@" + authorHandle(message) + ": " + firstLine(message.Content)
		hits = append(hits, searchHit{
			channelID: message.ChannelID,
			label:     label,
		})
	}
	return hits
}

type searchHit struct {
	channelID string
	label     string
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.searchActive {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyCtrlC:
		return true, tea.Quit
	case tea.KeyEsc:
		m.exitSearch()
		return true, nil
	case tea.KeyUp:
		if m.searchIndex > 0 {
			m.searchIndex--
		}
		return true, nil
	case tea.KeyDown:
		if m.searchIndex < len(m.searchHits())-1 {
			m.searchIndex++
		}
		return true, nil
	case tea.KeyEnter:
		hits := m.searchHits()
		if m.searchIndex < len(hits) {
			channelID := hits[m.searchIndex].channelID
			m.exitSearch()
			if channelID != m.directory.SelectedID() {
				return true, m.switchChannel(channelID)
			}
		}
		return true, nil
	case tea.KeyBackspace:
		if m.searchQuery != "" {
			runes := []rune(m.searchQuery)
			m.searchQuery = string(runes[:len(runes)-1])
			return true, m.queueSearch()
		}
		return true, nil
	case tea.KeyRunes:
		m.searchQuery += string(msg.Runes)
		return true, m.queueSearch()
	case tea.KeySpace:
		m.searchQuery += " "
		return true, m.queueSearch()
	}
	return true, nil // swallow everything else while the overlay is up
}

func (m *Model) renderSearchOverlay() string {
	if !m.searchActive {
		return ""
	}
	width := m.mainWidth()
	promptStyle := lipgloss.NewStyle().Foreground(textColor).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(metaColor)
	normalStyle := lipgloss.NewStyle().Foreground(blurText)
	selectedStyle := lipgloss.NewStyle().Foreground(sidebarSelect).Bold(true)

	lines := []string{promptStyle.Render("search: " + m.searchQuery + "▌")}
	query := strings.TrimSpace(m.searchQuery)
	hits := m.searchHits()
	switch {
	case len(query) < searchMinChars:
		lines = append(lines, hintStyle.Render("type at least two characters"))
	case len(hits) == 0:
		lines = append(lines, hintStyle.Render("no results"))
	default:
		for i, hit := range hits {
			prefix := "  "
			style := normalStyle
			if i == m.searchIndex {
				prefix = "> "
				style = selectedStyle
			}
			lines = append(lines, style.Render(truncateLine(prefix+hit.label, width-2)))
		}
	}
	lines = append(lines, hintStyle.Render("enter to jump · esc to close"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(metaColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}
