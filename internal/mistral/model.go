package mistral

import (
	"encoding/json"
	"strings"
)

// Message roles understood by the chat-completions API.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one entry of a chat-completions prompt.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body of POST /v1/chat/completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// chatResponse holds the fields of a completion this client reads.
// Content is either a string or a list of typed chunks.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// contentChunk is one element of a chunked message content.
type contentChunk struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// errorResponse covers the error shapes the API returns: a message string,
// or a detail that is a string or a list of validation entries.
type errorResponse struct {
	Message json.RawMessage `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// contentText flattens message content into plain text.
func contentText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var chunks []contentChunk
	if err := json.Unmarshal(raw, &chunks); err == nil {
		var b strings.Builder
		for _, c := range chunks {
			if c.Type == "" || c.Type == "text" {
				b.WriteString(c.Text)
			}
		}
		return b.String()
	}

	return ""
}

// rawText returns a JSON string value, or the compact JSON text of any other value.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
