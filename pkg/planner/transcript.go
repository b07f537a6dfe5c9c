package planner

import "trip-planner-be/pkg/llm"

// Transcript is an append-only conversation. Append never mutates the
// receiver, so a phase can hand its transcript to the next without sharing.
type Transcript struct {
	messages []llm.Message
}

func NewTranscript(first ...llm.Message) Transcript {
	return Transcript{}.Append(first...)
}

func (t Transcript) Append(msgs ...llm.Message) Transcript {
	out := make([]llm.Message, len(t.messages), len(t.messages)+len(msgs))
	copy(out, t.messages)
	return Transcript{messages: append(out, msgs...)}
}

// Messages returns a copy of the turns in order.
func (t Transcript) Messages() []llm.Message {
	return append([]llm.Message(nil), t.messages...)
}

func (t Transcript) Len() int {
	return len(t.messages)
}

// ToolResults returns every tool result recorded so far.
func (t Transcript) ToolResults() []llm.ToolResult {
	var out []llm.ToolResult
	for _, m := range t.messages {
		out = append(out, m.ToolResults...)
	}
	return out
}
