// internal/app/features/blogs/handler.go

// Package blogs serves community articles: the approved-blog list, the
// submission form, and the reading view. Article bodies are
// user-authored HTML and are sanitized before rendering.
package blogs

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/htmlsanitize"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

const (
	maxUploadBytes = 32 << 20
	excerptRunes   = 200
)

// Gateway is the slice of the API client the blog pages need.
type Gateway interface {
	Blogs(ctx context.Context, token string) ([]models.Blog, error)
	CreateBlog(ctx context.Context, token string, draft gateway.BlogDraft) (models.Blog, error)
}

type Handler struct {
	API    Gateway
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

type blogCardVM struct {
	ID            string
	Title         string
	Excerpt       string
	CoverImageURL string
	AuthorName    string
	CreatedAt     string
}

type blogDetailVM struct {
	blogCardVM
	Content template.HTML
}

type listData struct {
	viewdata.BaseVM
	Blogs     []blogCardVM
	CanCreate bool

	FormError    string
	FormOK       bool
	DraftTitle   string
	DraftContent string
}

type detailData struct {
	viewdata.BaseVM
	Found bool
	Blog  blogDetailVM
}

func buildCardVM(b models.Blog) blogCardVM {
	return blogCardVM{
		ID:            b.ID,
		Title:         b.Title,
		Excerpt:       excerpt(b.Content),
		CoverImageURL: b.CoverImageURL,
		AuthorName:    b.Author.Name,
		CreatedAt:     b.CreatedAt,
	}
}

// excerpt strips markup and clamps the plain text for list cards.
func excerpt(content string) string {
	plain := htmlsanitize.StripTags(content)
	runes := []rune(strings.TrimSpace(plain))
	if len(runes) <= excerptRunes {
		return string(runes)
	}
	return string(runes[:excerptRunes]) + "…"
}

// ServeList renders the approved blog index.
// GET /blogs
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.API.Blogs(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load blogs failed", err, "/blogs")
		return
	}

	templates.Render(w, r, "blogs_list", h.listData(r, u.Identity, list))
}

// ServeDetail renders one article with its sanitized body.
// GET /blogs/view/{blogID}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	blogID := chi.URLParam(r, "blogID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.API.Blogs(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load blog failed", err, "/blogs")
		return
	}

	data := detailData{BaseVM: viewdata.NewBaseVM(r, "Blog", views.SingleBlog)}
	for _, b := range list {
		if b.ID == blogID {
			data.Found = true
			data.Blog = blogDetailVM{
				blogCardVM: buildCardVM(b),
				Content:    htmlsanitize.SanitizeToHTML(b.Content),
			}
			break
		}
	}

	templates.Render(w, r, "blog_detail", data)
}

// HandleCreate submits a new article for moderation.
// POST /blogs
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !contentpolicy.CanAct(contentpolicy.ActionCreateBlog, u.Identity.Role) {
		uierrors.RenderForbidden(w, r, "Your account does not allow publishing blogs.", "/blogs")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse blog form failed", err, "Invalid form data.", "/blogs")
		return
	}

	draft := gateway.BlogDraft{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
	if file, header, err := r.FormFile("coverImage"); err == nil {
		defer file.Close()
		draft.CoverImage = &gateway.Upload{Filename: header.Filename, Reader: file}
	}

	if draft.Title == "" || draft.Content == "" {
		h.renderListWithError(w, r, u, "Title and content are both required.", draft)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create blog")
	defer cancel()

	created, err := h.API.CreateBlog(ctx, u.Token, draft)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "create blog failed", err, "/blogs")
		return
	}

	h.Log.Info("blog submitted for approval", zap.String("blog_id", created.ID))
	http.Redirect(w, r, views.Path(views.Blogs)+"?submitted=1", http.StatusSeeOther)
}

func (h *Handler) listData(r *http.Request, viewer models.Identity, list []models.Blog) listData {
	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Blogs", views.Blogs),
		CanCreate: contentpolicy.CanAct(contentpolicy.ActionCreateBlog, viewer.Role),
		FormOK:    r.URL.Query().Get("submitted") == "1",
	}
	for _, b := range list {
		data.Blogs = append(data.Blogs, buildCardVM(b))
	}
	return data
}

func (h *Handler) renderListWithError(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, msg string, draft gateway.BlogDraft) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.API.Blogs(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "reload blogs failed", err, "/blogs")
		return
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	data := h.listData(r, u.Identity, list)
	data.FormError = msg
	data.FormOK = false
	data.DraftTitle = draft.Title
	data.DraftContent = draft.Content
	templates.Render(w, r, "blogs_list", data)
}
