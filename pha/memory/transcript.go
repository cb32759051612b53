package memory

import (
	"fmt"
	"strings"
)

// Roles used in transcript turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one conversational exchange half: who spoke and what they said.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is the append-only conversation log. Formatting helpers only
// surface a bounded recent window; older turns are retained but never
// rendered into prompts.
type Transcript struct {
	turns []Turn
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append records a turn. Turns are never removed or rewritten.
func (t *Transcript) Append(role, content string) {
	t.turns = append(t.turns, Turn{Role: role, Content: content})
}

// AppendExchange records a user/assistant pair in order.
func (t *Transcript) AppendExchange(userText, assistantText string) {
	t.Append(RoleUser, userText)
	t.Append(RoleAssistant, assistantText)
}

// Pairs returns the number of completed user/assistant exchanges.
func (t *Transcript) Pairs() int {
	return len(t.turns) / 2
}

// Recent returns up to the last n raw turns.
func (t *Transcript) Recent(n int) []Turn {
	if n <= 0 || len(t.turns) == 0 {
		return nil
	}
	if n > len(t.turns) {
		n = len(t.turns)
	}
	out := make([]Turn, n)
	copy(out, t.turns[len(t.turns)-n:])
	return out
}

// Format renders the last maxPairs exchanges as "Role: text" blocks for
// prompt embedding.
func (t *Transcript) Format(maxPairs int) string {
	recent := t.Recent(maxPairs * 2)
	if len(recent) == 0 {
		return "No previous conversation"
	}

	lines := make([]string, 0, len(recent))
	for _, turn := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", capitalize(turn.Role), turn.Content))
	}
	return strings.Join(lines, "\n\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
