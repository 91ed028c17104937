package feed_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	_ "github.com/nursehub/nursehub/internal/app/features/assistant"
	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/features/feed"
	_ "github.com/nursehub/nursehub/internal/app/features/shared/views"
	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/domain/models"
	"github.com/nursehub/nursehub/internal/testutil"
)

type fakeGateway struct {
	posts []models.Post
	err   error

	gotTag     string
	gotDraft   gateway.PostDraft
	created    bool
	updatedID  string
	updateText string
	updateTags []string
	reactedID  string
	reactType  models.ReactionType
	commentID  string
	comment    string
}

func (f *fakeGateway) Posts(_ context.Context, _ string, tag string) ([]models.Post, error) {
	f.gotTag = tag
	if f.err != nil {
		return nil, f.err
	}
	if tag == "" {
		return f.posts, nil
	}
	var out []models.Post
	for _, p := range f.posts {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeGateway) CreatePost(_ context.Context, _ string, draft gateway.PostDraft) (models.Post, error) {
	f.gotDraft = draft
	f.created = true
	return models.Post{ID: "new-post", Text: draft.Text}, f.err
}

func (f *fakeGateway) UpdatePost(_ context.Context, _ string, postID, text string, tags []string) (models.Post, error) {
	f.updatedID = postID
	f.updateText = text
	f.updateTags = tags
	return models.Post{ID: postID, Text: text, Tags: tags}, f.err
}

func (f *fakeGateway) ToggleReaction(_ context.Context, _ string, postID string, t models.ReactionType) error {
	f.reactedID = postID
	f.reactType = t
	return f.err
}

func (f *fakeGateway) AddComment(_ context.Context, _ string, postID, text string) (models.Comment, error) {
	f.commentID = postID
	f.comment = text
	return models.Comment{ID: "c1", Text: text}, f.err
}

func newTestHandler(t *testing.T, api feed.Gateway) *feed.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return feed.NewHandler(api, uierrors.NewErrorLogger(logger, sm), logger)
}

func samplePost(authorID string) models.Post {
	return models.Post{
		ID: "p1",
		Author: models.Identity{
			ID:   authorID,
			Name: "Maria Lopez",
			Role: models.RoleNurse,
		},
		Text:        "Long shift tonight.",
		Tags:        []string{"night-shift"},
		DisplayName: "Maria L., RN",
		CreatedAt:   "2026-05-01T12:00:00Z",
	}
}

func postForm(t *testing.T, target string, user *auth.SessionUser, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return auth.WithTestUser(req, user)
}

func TestServeFeed_NurseSeesComposer(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{posts: []models.Post{samplePost("other")}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed", testutil.NurseUser())
	rec := testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Share with the community")
	rec.AssertContains(t, "Maria L., RN")
}

func TestServeFeed_PendingSeesNoticeNotComposer(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{posts: []models.Post{samplePost("other")}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed", testutil.PendingUser())
	rec := testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	body := rec.Body.String()
	if strings.Contains(body, "Share with the community") {
		t.Error("pending user should not see the composer")
	}
	rec.AssertContains(t, "pending")
}

func TestServeFeed_AdminSeesNoticeNotComposer(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	if strings.Contains(rec.Body.String(), "Share with the community") {
		t.Error("admin should not see the composer")
	}
}

func TestServeFeed_TagFilter(t *testing.T) {
	testutil.BootTemplates(t)
	tagged := samplePost("other")
	other := samplePost("other")
	other.ID = "p2"
	other.Tags = []string{"icu"}
	other.Text = "ICU rotation notes."
	api := &fakeGateway{posts: []models.Post{tagged, other}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed?tag=night-shift", testutil.NurseUser())
	rec := testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)

	if api.gotTag != "night-shift" {
		t.Errorf("gateway tag = %q, want night-shift", api.gotTag)
	}
	rec.AssertContains(t, "night-shift")
	rec.AssertContains(t, "Clear filter")
	if strings.Contains(rec.Body.String(), "ICU rotation notes.") {
		t.Error("filtered feed should not include posts without the tag")
	}
}

func TestHandleCreatePost_RequiresPHIConfirmation(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	form := url.Values{
		"text":                  {"A post without the checkbox ticked"},
		"displayNamePreference": {"FULL_NAME"},
	}
	req := postForm(t, "/feed/posts", testutil.NurseUser(), form)
	rec := testutil.NewRecorder()
	h.HandleCreatePost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 422)
	rec.AssertContains(t, "identifiable patient information")
	if api.created {
		t.Error("post must not be sent without PHI confirmation")
	}
}

func TestHandleCreatePost_Success(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	form := url.Values{
		"text":                  {"First post"},
		"tags":                  {"ICU, burnout"},
		"displayNamePreference": {"INITIALS"},
		"phi_confirmed":         {"yes"},
	}
	req := postForm(t, "/feed/posts", testutil.NurseUser(), form)
	rec := testutil.NewRecorder()
	h.HandleCreatePost(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/feed")
	if !api.created {
		t.Fatal("post not sent to gateway")
	}
	if api.gotDraft.DisplayNamePreference != models.DisplayInitials {
		t.Errorf("preference = %q, want INITIALS", api.gotDraft.DisplayNamePreference)
	}
	if len(api.gotDraft.Tags) != 2 || api.gotDraft.Tags[0] != "ICU" {
		t.Errorf("tags = %v", api.gotDraft.Tags)
	}
}

func TestHandleCreatePost_MediaOnly(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("text", "")
	mw.WriteField("displayNamePreference", "FULL")
	mw.WriteField("phi_confirmed", "yes")
	part, err := mw.CreateFormFile("media", "wound-care.jpg")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("jpeg-bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/feed/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = auth.WithTestUser(req, testutil.NurseUser())
	rec := testutil.NewRecorder()
	h.HandleCreatePost(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/feed")
	if !api.created {
		t.Fatal("media-only post not sent to gateway")
	}
	if api.gotDraft.Media == nil || api.gotDraft.Media.Filename != "wound-care.jpg" {
		t.Errorf("media = %+v, want the uploaded file", api.gotDraft.Media)
	}
	if api.gotDraft.Text != "" {
		t.Errorf("text = %q, want empty", api.gotDraft.Text)
	}
}

func TestHandleCreatePost_EmptyDraftRejected(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	form := url.Values{
		"text":                  {""},
		"displayNamePreference": {"FULL"},
		"phi_confirmed":         {"yes"},
	}
	req := postForm(t, "/feed/posts", testutil.NurseUser(), form)
	rec := testutil.NewRecorder()
	h.HandleCreatePost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 422)
	rec.AssertContains(t, "needs text or an attached file")
	if api.created {
		t.Error("empty draft must not be sent")
	}
}

func TestHandleCreatePost_PendingForbidden(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	form := url.Values{
		"text":          {"should not land"},
		"phi_confirmed": {"yes"},
	}
	req := postForm(t, "/feed/posts", testutil.PendingUser(), form)
	rec := testutil.NewRecorder()
	h.HandleCreatePost(rec.ResponseRecorder, req)

	rec.AssertContains(t, "Access denied")
	if api.created {
		t.Error("pending user must not create posts")
	}
}

func TestServeEditPost_OnlyAuthor(t *testing.T) {
	testutil.BootTemplates(t)
	viewer := testutil.NurseUser()
	api := &fakeGateway{posts: []models.Post{samplePost("someone-else")}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed/posts/p1/edit", viewer)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.ServeEditPost(rec.ResponseRecorder, req)

	rec.AssertContains(t, "Access denied")
}

func TestServeEditPost_AuthorGetsForm(t *testing.T) {
	testutil.BootTemplates(t)
	viewer := testutil.NurseUser()
	api := &fakeGateway{posts: []models.Post{samplePost(viewer.Identity.ID)}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed/posts/p1/edit", viewer)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.ServeEditPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "Long shift tonight.")
	rec.AssertContains(t, "Edit post")
}

func TestHandleEditPost_RequiresFreshPHIConfirmation(t *testing.T) {
	testutil.BootTemplates(t)
	viewer := testutil.NurseUser()
	api := &fakeGateway{posts: []models.Post{samplePost(viewer.Identity.ID)}}
	h := newTestHandler(t, api)

	form := url.Values{
		"text": {"Edited text"},
		"tags": {"night-shift"},
	}
	req := postForm(t, "/feed/posts/p1/edit", viewer, form)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.HandleEditPost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 422)
	if api.updatedID != "" {
		t.Error("edit must not be sent without a fresh PHI confirmation")
	}
}

func TestHandleEditPost_Success(t *testing.T) {
	testutil.BootTemplates(t)
	viewer := testutil.NurseUser()
	api := &fakeGateway{posts: []models.Post{samplePost(viewer.Identity.ID)}}
	h := newTestHandler(t, api)

	form := url.Values{
		"text":          {"Edited text"},
		"tags":          {"night-shift, icu"},
		"phi_confirmed": {"yes"},
	}
	req := postForm(t, "/feed/posts/p1/edit", viewer, form)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.HandleEditPost(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/feed/posts/p1")
	if api.updatedID != "p1" || api.updateText != "Edited text" {
		t.Errorf("update = (%q, %q)", api.updatedID, api.updateText)
	}
}

func TestHandleReact_TogglesAndRedirects(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{posts: []models.Post{samplePost("other")}}
	h := newTestHandler(t, api)

	form := url.Values{"type": {"HEART"}}
	req := postForm(t, "/feed/posts/p1/reactions", testutil.NurseUser(), form)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.HandleReact(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/feed")
	if api.reactedID != "p1" || api.reactType != models.ReactionHeart {
		t.Errorf("reaction = (%q, %q)", api.reactedID, api.reactType)
	}
}

func TestHandleReact_HTMXReturnsCard(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{posts: []models.Post{samplePost("other")}}
	h := newTestHandler(t, api)

	form := url.Values{"type": {"SUPPORT"}}
	req := postForm(t, "/feed/posts/p1/reactions", testutil.NurseUser(), form)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	req.Header.Set("HX-Request", "true")
	rec := testutil.NewRecorder()
	h.HandleReact(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "post-p1")
}

func TestHandleReact_PendingDenied(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{}
	h := newTestHandler(t, api)

	form := url.Values{"type": {"HEART"}}
	req := postForm(t, "/feed/posts/p1/reactions", testutil.PendingUser(), form)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.HandleReact(rec.ResponseRecorder, req)

	rec.AssertContains(t, "Access denied")
	if api.reactedID != "" {
		t.Error("pending user must not reach the gateway")
	}
}

func TestHandleComment_AppendsComment(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{posts: []models.Post{samplePost("other")}}
	h := newTestHandler(t, api)

	form := url.Values{"text": {"Hang in there!"}}
	req := postForm(t, "/feed/posts/p1/comments", testutil.NurseUser(), form)
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.HandleComment(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/feed")
	if api.commentID != "p1" || api.comment != "Hang in there!" {
		t.Errorf("comment = (%q, %q)", api.commentID, api.comment)
	}
}

func TestServeSinglePost_UnknownIDRendersEmptyState(t *testing.T) {
	testutil.BootTemplates(t)
	api := &fakeGateway{posts: []models.Post{samplePost("other")}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed/posts/missing", testutil.NurseUser())
	req = testutil.WithChiURLParam(req, "postID", "missing")
	rec := testutil.NewRecorder()
	h.ServeSinglePost(rec.ResponseRecorder, req)

	rec.AssertStatus(t, 200)
	rec.AssertContains(t, "no longer available")
}

func TestServeSinglePost_AnonymousPostHidesAuthor(t *testing.T) {
	testutil.BootTemplates(t)
	anon := samplePost("other")
	anon.DisplayName = models.AnonymousDisplayName
	anon.Author.AvatarURL = "https://cdn.example.com/maria.png"
	api := &fakeGateway{posts: []models.Post{anon}}
	h := newTestHandler(t, api)

	req := testutil.NewAuthenticatedRequest("GET", "/feed/posts/p1", testutil.NurseUser())
	req = testutil.WithChiURLParam(req, "postID", "p1")
	rec := testutil.NewRecorder()
	h.ServeSinglePost(rec.ResponseRecorder, req)

	rec.AssertContains(t, "Anonymous")
	body := rec.Body.String()
	if strings.Contains(body, "Maria Lopez") {
		t.Error("anonymous post must not leak the author's name")
	}
	if strings.Contains(body, "maria.png") {
		t.Error("anonymous post must not leak the author's avatar")
	}
}
