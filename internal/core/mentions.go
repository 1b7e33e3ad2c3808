package core

import (
	"strings"
	"unicode"

	"github.com/openagora/agora/internal/types"
)

// MentionQuery is a trailing @token found immediately before the cursor.
type MentionQuery struct {
	// Start is the rune index of the '@' in the input.
	Start int
	// Query is the token after the '@', without whitespace.
	Query string
}

// DetectMentionQuery scans the text immediately before the cursor for a
// trailing @token with no embedded whitespace. The token is the longest
// suffix matching '@' followed by non-space, non-'@' runes.
func DetectMentionQuery(text string, cursor int) (MentionQuery, bool) {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	for i := cursor - 1; i >= 0; i-- {
		r := runes[i]
		if unicode.IsSpace(r) {
			return MentionQuery{}, false
		}
		if r == '@' {
			return MentionQuery{Start: i, Query: string(runes[i+1 : cursor])}, true
		}
	}
	return MentionQuery{}, false
}

// FilterCandidates returns directory users whose username or display name
// contains the query, case-insensitively, capped at limit.
func FilterCandidates(users []types.User, query string, limit int) []types.User {
	normalized := strings.ToLower(query)
	out := make([]types.User, 0, limit)
	for _, user := range users {
		if normalized != "" &&
			!strings.Contains(strings.ToLower(user.Username), normalized) &&
			!strings.Contains(strings.ToLower(user.DisplayName), normalized) {
			continue
		}
		out = append(out, user)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// InsertMention replaces the trailing @token starting at start with
// "@DisplayName " and returns the new text and cursor position.
func InsertMention(text string, cursor, start int, displayName string) (string, int) {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	if start < 0 || start > cursor {
		return text, cursor
	}
	inserted := "@" + displayName + " "
	out := string(runes[:start]) + inserted + string(runes[cursor:])
	return out, start + len([]rune(inserted))
}

// Segment is a run of message content, either plain text or a mention token.
type Segment struct {
	Text    string
	Mention bool
}

// SplitMentions splits stored content into plain and mention segments. A
// mention token is '@' plus the longest run of non-whitespace after it, so a
// display name containing spaces highlights only its first word. Purely
// presentational; the stored content is never altered.
func SplitMentions(content string) []Segment {
	var segments []Segment
	runes := []rune(content)
	plainStart := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '@' {
			continue
		}
		end := i + 1
		for end < len(runes) && !unicode.IsSpace(runes[end]) {
			end++
		}
		if end == i+1 {
			continue
		}
		if i > plainStart {
			segments = append(segments, Segment{Text: string(runes[plainStart:i])})
		}
		segments = append(segments, Segment{Text: string(runes[i:end]), Mention: true})
		plainStart = end
		i = end - 1
	}
	if plainStart < len(runes) {
		segments = append(segments, Segment{Text: string(runes[plainStart:])})
	}
	return segments
}

// MentionsUser reports whether content contains a mention token matching the
// user. Tokens end at the first whitespace, so only the first word of a
// multi-word display name participates.
func MentionsUser(content string, user types.User) bool {
	firstWord := user.DisplayName
	if idx := strings.IndexFunc(firstWord, unicode.IsSpace); idx >= 0 {
		firstWord = firstWord[:idx]
	}
	for _, segment := range SplitMentions(content) {
		if !segment.Mention {
			continue
		}
		token := strings.TrimPrefix(segment.Text, "@")
		if strings.EqualFold(token, user.Username) || (firstWord != "" && strings.EqualFold(token, firstWord)) {
			return true
		}
	}
	return false
}
