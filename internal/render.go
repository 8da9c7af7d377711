package internal

import (
	"fmt"
	"html"
	"strings"
)

const attachmentPlaceholder = "(User inserted an attachment\U0001F4CE)"

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
    background-color: #f5f5f5;
    margin: 0;
    padding: 20px;
}
.chat-container {
    max-width: 900px;
    margin: 0 auto;
}
h1 {
    color: #333;
    text-align: center;
}
.export-summary {
    text-align: center;
    color: #666;
    margin-bottom: 24px;
}
.chat-session {
    background-color: #fff;
    border-radius: 8px;
    box-shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
    margin-bottom: 24px;
    padding: 16px 20px;
}
.chat-session-header {
    border-bottom: 1px solid #e0e0e0;
    color: #333;
    font-size: 1.1em;
    font-weight: 600;
    margin-bottom: 12px;
    padding-bottom: 8px;
}
.session-stats {
    color: #888;
    font-size: 0.85em;
    font-weight: 400;
}
.message {
    border-radius: 6px;
    line-height: 1.5;
    margin: 8px 0;
    padding: 10px 14px;
    word-wrap: break-word;
}
.user-message {
    background-color: #e3f2fd;
    border-left: 3px solid #2196f3;
}
.assistant-message {
    background-color: #f1f1f1;
    border-left: 3px solid #9e9e9e;
}
.code-lang {
    color: #888;
    font-family: monospace;
    font-size: 0.8em;
}
pre {
    background-color: #272822;
    border-radius: 4px;
    color: #f8f8f2;
    overflow-x: auto;
    padding: 10px;
}
code {
    font-family: "SF Mono", Menlo, Consolas, monospace;
    font-size: 0.9em;
}
</style>
</head>
<body>
<div class="chat-container">
<h1>%s</h1>
`

const htmlFooter = `</div>
</body>
</html>
`

var modeTitles = map[Mode]string{
	ModeCurrent:        "Cursor Chat History (Current Workspace)",
	ModeAll:            "Cursor Chat History (All Workspaces)",
	ModeSummary:        "Cursor Chat Questions (All Workspaces)",
	ModeCurrentSummary: "Cursor Chat Questions (Current Workspace)",
}

// RenderHTML renders an export bundle into a complete standalone HTML
// document. The output is deterministic for a given bundle, all user
// controlled text is escaped.
func RenderHTML(bundle ExportBundle) string {
	title := modeTitles[bundle.Mode]
	if title == "" {
		title = "Cursor Chat History"
	}

	var b strings.Builder
	fmt.Fprintf(&b, htmlHeader, html.EscapeString(title), html.EscapeString(title))

	fmt.Fprintf(&b, "<div class=\"export-summary\">Total: %d chat session(s), %d dialogue(s), %d question(s)</div>\n",
		bundle.SessionCount, bundle.DialogueCount, bundle.QuestionCount)

	if len(bundle.Sessions) == 0 {
		b.WriteString("<p>No chat sessions found.</p>\n")
		b.WriteString(htmlFooter)
		return b.String()
	}

	for i, session := range bundle.Sessions {
		renderSession(&b, session, i+1)
	}

	b.WriteString(htmlFooter)
	return b.String()
}

func renderSession(b *strings.Builder, session *ChatSession, ordinal int) {
	title := session.Title
	if title == "" {
		title = fmt.Sprintf("Chat Session %d", ordinal)
	}

	b.WriteString("<div class=\"chat-session\">\n")
	fmt.Fprintf(b, "<div class=\"chat-session-header\">%s <span class=\"session-stats\">(%d dialogue(s), %d question(s))</span></div>\n",
		html.EscapeString(title), session.DialogueCount(), session.QuestionCount())

	for _, msg := range session.Messages {
		renderMessage(b, msg)
	}

	b.WriteString("</div>\n")
}

func renderMessage(b *strings.Builder, msg Message) {
	class := "assistant-message"
	if msg.Role == RoleUser {
		class = "user-message"
	}

	fmt.Fprintf(b, "<div class=\"message %s\">", class)

	if msg.Text == "" && msg.HasAttachment {
		b.WriteString(html.EscapeString(attachmentPlaceholder))
		b.WriteString("</div>\n")
		return
	}

	b.WriteString(renderText(msg.Text))

	if msg.HasAttachment {
		b.WriteString("<br>")
		b.WriteString(html.EscapeString(attachmentPlaceholder))
	}

	for _, block := range msg.CodeBlocks {
		if block.Code == "" || strings.Contains(msg.Text, block.Code) {
			continue
		}
		b.WriteString(renderCodeHTML(block))
	}

	b.WriteString("</div>\n")
}

// renderText converts message text to HTML, rendering fenced code
// blocks with syntax highlighting and escaping everything else
func renderText(text string) string {
	if !strings.Contains(text, "```") {
		return escapeLines(text)
	}

	var out strings.Builder
	for _, seg := range splitFences(text) {
		if seg.code {
			out.WriteString(renderCodeHTML(CodeBlock{Language: seg.lang, Code: seg.text}))
		} else {
			out.WriteString(escapeLines(seg.text))
		}
	}
	return out.String()
}

func escapeLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	return strings.Join(lines, "<br>")
}

// renderCodeHTML renders one code block, falling back to a plain
// escaped pre block when highlighting fails
func renderCodeHTML(block CodeBlock) string {
	var b strings.Builder
	if block.Language != "" {
		fmt.Fprintf(&b, "<span class=\"code-lang\">%s</span>", html.EscapeString(block.Language))
	}

	highlighted, err := HighlightHTML(block)
	if err != nil {
		LogDebug("highlight failed: %v", err)
		fmt.Fprintf(&b, "<pre><code>%s</code></pre>", html.EscapeString(block.Code))
		return b.String()
	}

	b.WriteString(highlighted)
	return b.String()
}
