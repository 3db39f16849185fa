// Package markdown renders the small markdown subset the model is asked to
// produce: h2–h4 headings, bullet and numbered lists, horizontal rules,
// paragraphs, and **bold** / *italic* / `code` inline spans. It is a
// line-oriented single-pass tokenizer, not a general markdown engine; nested
// or overlapping inline spans are not supported.
package markdown

import (
	"html"
	"regexp"
	"strings"
)

type TokenType string

const (
	H2 TokenType = "h2"
	H3 TokenType = "h3"
	H4 TokenType = "h4"
	UL TokenType = "ul"
	OL TokenType = "ol"
	P  TokenType = "p"
	HR TokenType = "hr"
)

// Token is one block-level element. Text is set for headings and paragraphs,
// Items for lists.
type Token struct {
	Type  TokenType
	Text  string
	Items []string
}

var (
	headingRe = regexp.MustCompile(`^#{1,4} `)
	h2Re      = regexp.MustCompile(`^#{1,2} `)
	hrRe      = regexp.MustCompile(`^---+$`)
	bulletRe  = regexp.MustCompile(`^[-*•] `)
	orderedRe = regexp.MustCompile(`^\d+[.)]\s`)
)

// Tokenize splits markdown into block tokens. Consecutive bullet or numbered
// lines merge into one list token; consecutive plain lines merge into one
// paragraph joined by single spaces. Blank lines only separate tokens.
func Tokenize(markdown string) []Token {
	lines := strings.Split(markdown, "\n")
	var tokens []Token
	i := 0

	for i < len(lines) {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "#### "):
			tokens = append(tokens, Token{Type: H4, Text: line[5:]})
			i++

		case strings.HasPrefix(line, "### "):
			tokens = append(tokens, Token{Type: H3, Text: line[4:]})
			i++

		case strings.HasPrefix(line, "## ") || strings.HasPrefix(line, "# "):
			tokens = append(tokens, Token{Type: H2, Text: h2Re.ReplaceAllString(line, "")})
			i++

		case hrRe.MatchString(strings.TrimSpace(line)):
			tokens = append(tokens, Token{Type: HR})
			i++

		case bulletRe.MatchString(line):
			var items []string
			for i < len(lines) && bulletRe.MatchString(lines[i]) {
				items = append(items, bulletRe.ReplaceAllString(lines[i], ""))
				i++
			}
			tokens = append(tokens, Token{Type: UL, Items: items})

		case orderedRe.MatchString(line):
			var items []string
			for i < len(lines) && orderedRe.MatchString(lines[i]) {
				items = append(items, orderedRe.ReplaceAllString(lines[i], ""))
				i++
			}
			tokens = append(tokens, Token{Type: OL, Items: items})

		case strings.TrimSpace(line) == "":
			i++

		default:
			text := strings.TrimSpace(line)
			i++
			for i < len(lines) && isParagraphLine(lines[i]) {
				text += " " + strings.TrimSpace(lines[i])
				i++
			}
			tokens = append(tokens, Token{Type: P, Text: text})
		}
	}

	return tokens
}

func isParagraphLine(line string) bool {
	return strings.TrimSpace(line) != "" &&
		!headingRe.MatchString(line) &&
		!bulletRe.MatchString(line) &&
		!orderedRe.MatchString(line) &&
		!hrRe.MatchString(strings.TrimSpace(line))
}

type SpanStyle string

const (
	Plain  SpanStyle = "plain"
	Bold   SpanStyle = "bold"
	Italic SpanStyle = "italic"
	Code   SpanStyle = "code"
)

// Span is a styled fragment of a text token.
type Span struct {
	Style SpanStyle
	Text  string
}

var inlineRe = regexp.MustCompile("\\*\\*[^*]+\\*\\*|\\*[^*]+\\*|`[^`]+`")

// ParseInline splits text into styled spans. Markers that never close are
// left as plain text.
func ParseInline(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range inlineRe.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Style: Plain, Text: text[last:loc[0]]})
		}
		part := text[loc[0]:loc[1]]
		switch {
		case strings.HasPrefix(part, "**"):
			spans = append(spans, Span{Style: Bold, Text: part[2 : len(part)-2]})
		case strings.HasPrefix(part, "`"):
			spans = append(spans, Span{Style: Code, Text: part[1 : len(part)-1]})
		default:
			spans = append(spans, Span{Style: Italic, Text: part[1 : len(part)-1]})
		}
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Style: Plain, Text: text[last:]})
	}
	return spans
}

// RenderHTML converts markdown to a minimal HTML fragment. Text content is
// escaped; only the tags this renderer emits appear in the output.
func RenderHTML(markdown string) string {
	var sb strings.Builder
	for _, tok := range Tokenize(markdown) {
		switch tok.Type {
		case H2, H3, H4:
			tag := string(tok.Type)
			sb.WriteString("<" + tag + ">" + renderInline(tok.Text) + "</" + tag + ">\n")
		case UL, OL:
			tag := string(tok.Type)
			sb.WriteString("<" + tag + ">\n")
			for _, item := range tok.Items {
				sb.WriteString("<li>" + renderInline(item) + "</li>\n")
			}
			sb.WriteString("</" + tag + ">\n")
		case HR:
			sb.WriteString("<hr>\n")
		case P:
			sb.WriteString("<p>" + renderInline(tok.Text) + "</p>\n")
		}
	}
	return sb.String()
}

func renderInline(text string) string {
	var sb strings.Builder
	for _, span := range ParseInline(text) {
		escaped := html.EscapeString(span.Text)
		switch span.Style {
		case Bold:
			sb.WriteString("<strong>" + escaped + "</strong>")
		case Italic:
			sb.WriteString("<em>" + escaped + "</em>")
		case Code:
			sb.WriteString("<code>" + escaped + "</code>")
		default:
			sb.WriteString(escaped)
		}
	}
	return sb.String()
}
