// internal/app/gateway/chat.go
package gateway

import (
	"context"
	"net/http"

	"github.com/nursehub/nursehub/internal/domain/models"
)

// ChatReply sends one assistant turn. The whole prior history travels
// with the request; the chat backend keeps no conversation state.
func (c *Client) ChatReply(ctx context.Context, token, message string, history []models.ChatMessage) (string, error) {
	if history == nil {
		history = []models.ChatMessage{}
	}
	var out struct {
		Reply string `json:"reply"`
	}
	err := c.sendJSON(ctx, token, http.MethodPost, "/ai/chat", map[string]any{
		"message": message,
		"history": history,
	}, &out)
	return out.Reply, err
}
