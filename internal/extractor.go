package internal

import (
	"strings"

	"github.com/google/uuid"
)

// schemaMatcher maps one known record layout onto chat sessions. The
// extract function reports false when the record does not carry that
// layout so the next matcher can try.
type schemaMatcher struct {
	name    string
	extract func(rec WorkspaceRecord) ([]*ChatSession, bool)
}

// schemaMatchers is probed in order, first match wins per record
var schemaMatchers = []schemaMatcher{
	{name: "composer", extract: extractComposerSchema},
	{name: "aichat", extract: extractAichatSchema},
}

// ExtractSessions turns decoded store records into chat sessions.
// Duplicate session ids keep the later record's content and sessions
// without any renderable message are dropped. No records at all is an
// empty result, records that match no known schema is a
// SchemaMismatchError.
func ExtractSessions(records []WorkspaceRecord) ([]*ChatSession, error) {
	if len(records) == 0 {
		return []*ChatSession{}, nil
	}

	var sessions []*ChatSession
	index := make(map[string]int)
	matched := false

	for _, rec := range records {
		for _, matcher := range schemaMatchers {
			extracted, ok := matcher.extract(rec)
			if !ok {
				continue
			}
			matched = true
			LogDebug("record %s matched %s schema, %d session(s)", rec.Key, matcher.name, len(extracted))
			for _, session := range extracted {
				if at, seen := index[session.ID]; seen {
					sessions[at] = session
				} else {
					index[session.ID] = len(sessions)
					sessions = append(sessions, session)
				}
			}
			break
		}
	}

	if !matched {
		return nil, &SchemaMismatchError{Records: len(records)}
	}

	kept := sessions[:0]
	for _, session := range sessions {
		if len(session.Messages) > 0 {
			kept = append(kept, session)
		}
	}
	return kept, nil
}

// extractComposerSchema handles composerData records, one session per
// record with a top-level conversation list
func extractComposerSchema(rec WorkspaceRecord) ([]*ChatSession, bool) {
	conversation, ok := rec.Value.Get("conversation")
	if !ok || conversation.Kind() != KindList {
		return nil, false
	}

	session := &ChatSession{
		ID:    rec.Value.StringAt("composerId"),
		Title: rec.Value.StringAt("title", "name"),
	}
	if session.ID == "" {
		session.ID = strings.TrimPrefix(rec.Key, composerKeyPrefix)
	}
	if session.ID == "" || session.ID == rec.Key {
		session.ID = uuid.NewString()
	}
	if created, ok := rec.Value.NumberAt("createdAt"); ok {
		session.CreatedAt = int64(created)
	}
	if updated, ok := rec.Value.NumberAt("lastUpdatedAt"); ok {
		session.LastUpdatedAt = int64(updated)
	}

	entries, _ := conversation.AsList()
	for _, entry := range entries {
		msg := Message{
			Role:          classifyRole(entry),
			Text:          entry.StringAt("content", "text", "message"),
			HasAttachment: hasAttachmentMarker(entry),
		}
		if ts, ok := entry.NumberAt("timestamp", "createdAt"); ok {
			msg.Timestamp = int64(ts)
		}
		msg.CodeBlocks = entryCodeBlocks(entry, msg.Text)

		if msg.Text == "" && !msg.HasAttachment {
			continue
		}
		session.Messages = append(session.Messages, msg)
	}

	return []*ChatSession{session}, true
}

// extractAichatSchema handles the legacy chat pane record, one session
// per tab with user and ai bubbles
func extractAichatSchema(rec WorkspaceRecord) ([]*ChatSession, bool) {
	tabs, ok := rec.Value.Get("tabs")
	if !ok || tabs.Kind() != KindList {
		return nil, false
	}

	tabList, _ := tabs.AsList()
	sessions := make([]*ChatSession, 0, len(tabList))
	for _, tab := range tabList {
		session := &ChatSession{
			ID:    tab.StringAt("tabId", "id"),
			Title: tab.StringAt("chatTitle", "title"),
		}
		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		if ts, ok := tab.NumberAt("lastSendTime"); ok {
			session.LastUpdatedAt = int64(ts)
		}

		for _, bubble := range tab.ListAt("bubbles") {
			msg := Message{
				Role:          classifyRole(bubble),
				Text:          bubble.StringAt("text", "rawText"),
				HasAttachment: hasAttachmentMarker(bubble),
			}
			msg.CodeBlocks = entryCodeBlocks(bubble, msg.Text)
			if msg.Text == "" && !msg.HasAttachment {
				continue
			}
			session.Messages = append(session.Messages, msg)
		}

		sessions = append(sessions, session)
	}

	return sessions, true
}

// classifyRole reads the role discriminant of a message entry. Cursor
// has stored it as a number, a numeric string, and a word depending on
// version. Unknown roles are logged and treated as assistant.
func classifyRole(entry Value) Role {
	for _, key := range []string{"role", "type"} {
		field, ok := entry.Get(key)
		if !ok {
			continue
		}
		if s, ok := field.AsString(); ok {
			switch s {
			case "1", "user":
				return RoleUser
			case "2", "assistant", "ai":
				return RoleAssistant
			}
			LogWarn("unknown role %q, treating as assistant", s)
			return RoleAssistant
		}
		if n, ok := field.AsNumber(); ok {
			switch int(n) {
			case 1:
				return RoleUser
			case 2:
				return RoleAssistant
			}
			LogWarn("unknown role %d, treating as assistant", int(n))
			return RoleAssistant
		}
	}

	if isUser, ok := entry.Get("isUser"); ok {
		if b, okb := isUser.AsBool(); okb && b {
			return RoleUser
		}
	}

	return RoleAssistant
}

// attachmentKeys are the fields Cursor has used across versions to
// carry attached context alongside a message
var attachmentKeys = []string{
	"attachments",
	"files",
	"images",
	"image",
	"additional_data",
	"additionalData",
	"terminal_selections",
	"terminalSelections",
	"file_contents",
	"attached_files",
	"selections",
	"fileSelections",
	"folderSelections",
}

func hasAttachmentMarker(entry Value) bool {
	for _, key := range attachmentKeys {
		field, ok := entry.Get(key)
		if !ok {
			continue
		}
		if b, okb := field.AsBool(); okb {
			if b {
				return true
			}
			continue
		}
		if !field.IsEmpty() {
			return true
		}
	}
	return false
}

// entryCodeBlocks merges explicitly stored code blocks with fenced
// blocks parsed out of the message text
func entryCodeBlocks(entry Value, text string) []CodeBlock {
	var blocks []CodeBlock
	for _, raw := range entry.ListAt("codeBlocks") {
		code := raw.StringAt("content", "code")
		if code == "" {
			continue
		}
		blocks = append(blocks, CodeBlock{
			Language: raw.StringAt("language", "languageId"),
			Code:     code,
		})
	}
	blocks = append(blocks, ParseFencedBlocks(text)...)
	return blocks
}
