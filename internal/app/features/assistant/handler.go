// internal/app/features/assistant/handler.go

// Package assistant serves the AI chat page and the floating chat
// widget included on every signed-in page. The conversation history is
// carried in the form itself; nothing is stored server-side.
package assistant

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/htmlsanitize"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// maxHistoryTurns caps how much prior conversation is replayed to the
// backend on each message.
const maxHistoryTurns = 20

// Gateway is the slice of the API client the assistant needs.
type Gateway interface {
	ChatReply(ctx context.Context, token, message string, history []models.ChatMessage) (string, error)
}

type Handler struct {
	API    Gateway
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

type messageVM struct {
	Role string
	Text string // raw text, replayed through the hidden history inputs

	// HTML is the display form: plain text paragraphed and escaped,
	// anything with markup sanitized.
	HTML template.HTML
}

func newMessageVM(role, text string) messageVM {
	return messageVM{Role: role, Text: text, HTML: htmlsanitize.PrepareForDisplay(text)}
}

type chatData struct {
	viewdata.BaseVM
	Messages  []messageVM
	FormError string
}

// ServeChat renders the chat page with an empty conversation.
// GET /assistant
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	data := chatData{BaseVM: viewdata.NewBaseVM(r, "Assistant", views.Assistant)}
	templates.Render(w, r, "assistant_chat", data)
}

// HandleChatPost sends one message plus the replayed history and
// renders the extended conversation.
// POST /assistant
func (h *Handler) HandleChatPost(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse chat form failed", err, "Invalid form data.", "/assistant")
		return
	}

	message := strings.TrimSpace(r.PostFormValue("message"))
	history := historyFromForm(r.PostForm["history_sender"], r.PostForm["history_text"])

	data := chatData{BaseVM: viewdata.NewBaseVM(r, "Assistant", views.Assistant)}
	for _, m := range history {
		data.Messages = append(data.Messages, newMessageVM(string(m.Sender), m.Text))
	}

	if message == "" {
		data.FormError = "Type a message first."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "assistant_chat", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "ai chat")
	defer cancel()

	reply, err := h.API.ChatReply(ctx, u.Token, message, history)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "ai chat failed", err, "/assistant")
		return
	}

	data.Messages = append(data.Messages,
		newMessageVM(string(models.SenderUser), message),
		newMessageVM(string(models.SenderAI), reply))

	templates.Render(w, r, "assistant_chat", data)
}

// historyFromForm rebuilds the prior conversation from paired hidden
// inputs, dropping malformed rows and clamping length.
func historyFromForm(senders, texts []string) []models.ChatMessage {
	n := len(senders)
	if len(texts) < n {
		n = len(texts)
	}
	if n > maxHistoryTurns {
		senders = senders[n-maxHistoryTurns:]
		texts = texts[n-maxHistoryTurns:]
		n = maxHistoryTurns
	}
	history := make([]models.ChatMessage, 0, n)
	for i := 0; i < n; i++ {
		sender := models.MessageSender(senders[i])
		if sender != models.SenderUser && sender != models.SenderAI {
			continue
		}
		text := strings.TrimSpace(texts[i])
		if text == "" {
			continue
		}
		history = append(history, models.ChatMessage{Sender: sender, Text: text})
	}
	return history
}
