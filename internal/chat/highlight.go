package chat

import (
	"bytes"
	"os"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

const chromaStyleName = "dracula"

// highlightCodeBlocks colorizes fenced code blocks in message bodies.
// Fences without a closing line render verbatim.
func highlightCodeBlocks(body string) string {
	if body == "" || os.Getenv("NO_COLOR") != "" {
		return body
	}

	lines := strings.Split(body, "\n")
	var out strings.Builder

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		fence, lang, ok := parseFence(line)
		if !ok {
			out.WriteString(line)
			if i < len(lines)-1 {
				out.WriteByte('\n')
			}
			continue
		}

		end := findClosingFence(lines, i+1, fence)
		if end == -1 {
			out.WriteString(line)
			if i < len(lines)-1 {
				out.WriteByte('\n')
			}
			continue
		}

		out.WriteString(line)
		out.WriteByte('\n')

		code := strings.Join(lines[i+1:end], "\n")
		out.WriteString(highlightCode(code, lang))
		out.WriteByte('\n')
		out.WriteString(lines[end])

		if end < len(lines)-1 {
			out.WriteByte('\n')
		}
		i = end
	}

	return out.String()
}

func parseFence(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 3 {
		return "", "", false
	}

	fenceChar := trimmed[0]
	if fenceChar != '`' && fenceChar != '~' {
		return "", "", false
	}

	count := 0
	for count < len(trimmed) && trimmed[count] == fenceChar {
		count++
	}
	if count < 3 {
		return "", "", false
	}

	fence := trimmed[:count]
	rest := strings.TrimSpace(trimmed[count:])
	lang := ""
	if rest != "" {
		lang = strings.Fields(rest)[0]
	}
	return fence, lang, true
}

func findClosingFence(lines []string, from int, fence string) int {
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == fence {
			return i
		}
	}
	return -1
}

func highlightCode(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(chromaStyleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
