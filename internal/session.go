package internal

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// CodeBlock is a code snippet captured from a message.
type CodeBlock struct {
	Language string
	Code     string
}

// Message represents one turn in a chat session.
type Message struct {
	Role          Role
	Text          string
	HasAttachment bool
	CodeBlocks    []CodeBlock
	Timestamp     int64 // unix milliseconds, 0 when unknown
}

// ChatSession is an ordered conversation reconstructed from storage.
// Message order reflects conversation chronology.
type ChatSession struct {
	ID            string
	Title         string
	Messages      []Message
	CreatedAt     int64 // unix milliseconds, 0 when unknown
	LastUpdatedAt int64
}

// DialogueCount returns the total number of messages in the session.
func (s *ChatSession) DialogueCount() int {
	return len(s.Messages)
}

// QuestionCount returns the number of user-authored messages.
func (s *ChatSession) QuestionCount() int {
	count := 0
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			count++
		}
	}
	return count
}

// ExportBundle is the aggregated artifact handed to the renderer.
// For summary modes Sessions hold only user messages and Questions carries
// the same messages flattened, in original order.
type ExportBundle struct {
	Mode          Mode
	Sessions      []*ChatSession
	Questions     []Message
	SessionCount  int
	DialogueCount int
	QuestionCount int
}
