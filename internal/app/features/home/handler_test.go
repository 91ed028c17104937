package home_test

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/features/home"
	_ "github.com/nursehub/nursehub/internal/app/features/shared/views"
	"github.com/nursehub/nursehub/internal/testutil"
)

func TestServeRoot_RedirectsSignedIn(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.NurseUser())
	rec := testutil.NewRecorder()

	h.ServeRoot(rec.ResponseRecorder, req)
	rec.AssertRedirect(t, "/feed")
}

func TestServeRoot_ForwardsInvitationToken(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/?token=abc123", nil)
	rec := testutil.NewRecorder()

	h.ServeRoot(rec.ResponseRecorder, req)
	rec.AssertRedirect(t, "/signup?token=abc123")
}

func TestServeRoot_RendersLanding(t *testing.T) {
	testutil.BootTemplates(t)
	h := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()

	h.ServeRoot(rec.ResponseRecorder, req)

	rec.AssertContains(t, "Join the Community")
	rec.AssertContains(t, "What members say")
}

func TestServePrivacy(t *testing.T) {
	testutil.BootTemplates(t)
	h := home.NewHandler(zap.NewNop())

	req := httptest.NewRequest("GET", "/privacy", nil)
	rec := testutil.NewRecorder()

	h.ServePrivacy(rec.ResponseRecorder, req)
	rec.AssertContains(t, "Privacy Policy")
}