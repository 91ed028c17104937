// internal/domain/models/chat.go
package models

// MessageSender identifies who produced a chat message.
type MessageSender string

const (
	SenderUser MessageSender = "USER"
	SenderAI   MessageSender = "AI"
)

// ChatMessage is one turn of the AI assistant conversation. The full
// history is sent with every request; the chat backend is stateless from
// the client's point of view.
type ChatMessage struct {
	Sender MessageSender `json:"sender"`
	Text   string        `json:"text"`
}
