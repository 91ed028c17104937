package assistant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/features/assistant"
	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	_ "github.com/nursehub/nursehub/internal/app/features/shared/views"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/domain/models"
	"github.com/nursehub/nursehub/internal/testutil"
)

type fakeChat struct {
	reply      string
	err        error
	gotMessage string
	gotHistory []models.ChatMessage
}

func (f *fakeChat) ChatReply(_ context.Context, _ string, message string, history []models.ChatMessage) (string, error) {
	f.gotMessage = message
	f.gotHistory = history
	return f.reply, f.err
}

func newTestHandler(t *testing.T, api assistant.Gateway) *assistant.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return assistant.NewHandler(api, uierrors.NewErrorLogger(logger, sm), logger)
}

func postChat(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", "/assistant", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return auth.WithTestUser(req, testutil.NurseUser())
}

func TestHandleChatPost_SendsHistory(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeChat{reply: "Drink water and rest."}
	h := newTestHandler(t, api)

	form := url.Values{
		"message":        {"How do I handle night shift fatigue?"},
		"history_sender": {"USER", "AI"},
		"history_text":   {"hello", "Hi! How can I help?"},
	}
	req := postChat(t, form)
	rec := testutil.NewRecorder()

	h.HandleChatPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	if api.gotMessage != "How do I handle night shift fatigue?" {
		t.Errorf("message = %q", api.gotMessage)
	}
	if len(api.gotHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(api.gotHistory))
	}
	if api.gotHistory[0].Sender != models.SenderUser || api.gotHistory[1].Sender != models.SenderAI {
		t.Errorf("history senders = %v", api.gotHistory)
	}
	rec.AssertContains(t, "Drink water and rest.")
	rec.AssertContains(t, "How do I handle night shift fatigue?")
}

func TestHandleChatPost_EmptyMessage(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeChat{}
	h := newTestHandler(t, api)

	form := url.Values{"message": {"   "}}
	req := postChat(t, form)
	rec := testutil.NewRecorder()

	h.HandleChatPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 422)
	if api.gotMessage != "" {
		t.Error("backend should not be called for an empty message")
	}
}

func TestHandleChatPost_DropsMalformedHistoryRows(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeChat{reply: "ok"}
	h := newTestHandler(t, api)

	form := url.Values{
		"message":        {"hi"},
		"history_sender": {"USER", "INTRUDER", "AI"},
		"history_text":   {"one", "two", "three"},
	}
	req := postChat(t, form)
	rec := testutil.NewRecorder()

	h.HandleChatPost(rec.ResponseRecorder, req)

	if len(api.gotHistory) != 2 {
		t.Fatalf("history length = %d, want 2 (unknown sender dropped)", len(api.gotHistory))
	}
}

func TestServeChat_RendersEmptyConversation(t *testing.T) {
	testutil.BootTemplates(t)
	h := newTestHandler(t, &fakeChat{})

	req := testutil.NewAuthenticatedRequest("GET", "/assistant", testutil.NurseUser())
	rec := testutil.NewRecorder()

	h.ServeChat(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Ask a question to get started.")
}

