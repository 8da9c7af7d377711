package internal

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "monokai"

// textSegment is one run of message text: either prose or the body of
// a fenced code block.
type textSegment struct {
	code bool
	lang string
	text string
}

// splitFences splits message text on triple-backtick fences into an
// ordered list of prose and code segments. An unclosed fence keeps the
// remainder of the text as one code segment.
func splitFences(text string) []textSegment {
	var segments []textSegment
	var current []string
	var language string
	inBlock := false

	flush := func(code bool) {
		if !code && len(current) == 0 {
			return
		}
		segments = append(segments, textSegment{
			code: code,
			lang: language,
			text: strings.Join(current, "\n"),
		})
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inBlock {
				flush(true)
				inBlock = false
			} else {
				flush(false)
				language = strings.TrimPrefix(trimmed, "```")
				inBlock = true
			}
			continue
		}
		current = append(current, line)
	}

	if inBlock {
		if len(current) > 0 {
			flush(true)
		}
	} else {
		flush(false)
	}

	return segments
}

// ParseFencedBlocks pulls triple-backtick code blocks out of message text
func ParseFencedBlocks(text string) []CodeBlock {
	if !strings.Contains(text, "```") {
		return nil
	}

	var blocks []CodeBlock
	for _, seg := range splitFences(text) {
		if seg.code {
			blocks = append(blocks, CodeBlock{Language: seg.lang, Code: seg.text})
		}
	}
	return blocks
}

// HighlightHTML renders a code block as syntax highlighted HTML with
// inline styles
func HighlightHTML(block CodeBlock) (string, error) {
	lexer := lexers.Get(block.Language)
	if lexer == nil {
		lexer = lexers.Analyse(block.Code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, block.Code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}

	return buf.String(), nil
}
