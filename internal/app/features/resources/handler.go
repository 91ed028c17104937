// internal/app/features/resources/handler.go

// Package resources serves the shared library: the approved-resource
// list, the submission form (link or file upload), and the detail view.
package resources

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

const maxUploadBytes = 32 << 20

// Gateway is the slice of the API client the library needs.
type Gateway interface {
	Resources(ctx context.Context, token string) ([]models.Resource, error)
	CreateResource(ctx context.Context, token string, draft gateway.ResourceDraft) (models.Resource, error)
}

type Handler struct {
	API    Gateway
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

type resourceVM struct {
	ID          string
	Title       string
	Description string
	IsLink      bool
	URL         string
	AuthorName  string
	CreatedAt   string
}

type listData struct {
	viewdata.BaseVM
	Resources []resourceVM
	CanCreate bool

	// Submission form state.
	FormError        string
	FormOK           bool
	DraftTitle       string
	DraftDescription string
	DraftType        string
	DraftURL         string
}

type detailData struct {
	viewdata.BaseVM
	Found    bool
	Resource resourceVM
}

func buildResourceVM(res models.Resource) resourceVM {
	vm := resourceVM{
		ID:          res.ID,
		Title:       res.Title,
		Description: res.Description,
		IsLink:      res.Type == models.ResourceLink,
		AuthorName:  res.Author.Name,
		CreatedAt:   res.CreatedAt,
	}
	if vm.IsLink {
		vm.URL = res.Content
	} else {
		vm.URL = res.FileURL
	}
	return vm
}

// ServeList renders the approved-resource library.
// GET /resources
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.API.Resources(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load resources failed", err, "/resources")
		return
	}

	templates.Render(w, r, "resources_list", h.listData(r, u.Identity, list))
}

// ServeDetail renders one resource.
// GET /resources/view/{resourceID}
//
// Like posts, the backend has no single-resource endpoint; the entry is
// picked out of the list fetch and an unknown id renders the empty
// state.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	resourceID := chi.URLParam(r, "resourceID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.API.Resources(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load resource failed", err, "/resources")
		return
	}

	data := detailData{BaseVM: viewdata.NewBaseVM(r, "Resource", views.SingleResource)}
	for _, res := range list {
		if res.ID == resourceID {
			data.Found = true
			data.Resource = buildResourceVM(res)
			break
		}
	}

	templates.Render(w, r, "resource_detail", data)
}

// HandleCreate submits a new resource for moderation.
// POST /resources
//
// A LINK resource carries a URL in the content field; a FILE resource
// carries an upload. Exactly one of the two must be present.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !contentpolicy.CanAct(contentpolicy.ActionCreateResource, u.Identity.Role) {
		uierrors.RenderForbidden(w, r, "Your account does not allow submitting resources.", "/resources")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse resource form failed", err, "Invalid form data.", "/resources")
		return
	}

	draft := gateway.ResourceDraft{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Type:        models.ResourceType(r.PostFormValue("type")),
		Content:     strings.TrimSpace(r.PostFormValue("content")),
	}
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		draft.File = &gateway.Upload{Filename: header.Filename, Reader: file}
	}

	if msg := validateDraft(draft); msg != "" {
		h.renderListWithError(w, r, u, msg, draft)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create resource")
	defer cancel()

	created, err := h.API.CreateResource(ctx, u.Token, draft)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "create resource failed", err, "/resources")
		return
	}

	h.Log.Info("resource submitted for approval",
		zap.String("resource_id", created.ID),
		zap.String("type", string(draft.Type)))

	http.Redirect(w, r, views.Path(views.Resources)+"?submitted=1", http.StatusSeeOther)
}

// validateDraft enforces the LINK-xor-FILE rule.
func validateDraft(draft gateway.ResourceDraft) string {
	if draft.Title == "" {
		return "Title is required."
	}
	switch draft.Type {
	case models.ResourceLink:
		if draft.Content == "" {
			return "A link resource needs a URL."
		}
		if draft.File != nil {
			return "A link resource cannot also carry a file."
		}
	case models.ResourceFile:
		if draft.File == nil {
			return "A file resource needs an upload."
		}
		if draft.Content != "" {
			return "A file resource cannot also carry a URL."
		}
	default:
		return "Choose whether this is a link or a file."
	}
	return ""
}

func (h *Handler) listData(r *http.Request, viewer models.Identity, list []models.Resource) listData {
	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Resources", views.Resources),
		CanCreate: contentpolicy.CanAct(contentpolicy.ActionCreateResource, viewer.Role),
		DraftType: string(models.ResourceLink),
		FormOK:    r.URL.Query().Get("submitted") == "1",
	}
	for _, res := range list {
		data.Resources = append(data.Resources, buildResourceVM(res))
	}
	return data
}

func (h *Handler) renderListWithError(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, msg string, draft gateway.ResourceDraft) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.API.Resources(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "reload resources failed", err, "/resources")
		return
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	data := h.listData(r, u.Identity, list)
	data.FormError = msg
	data.FormOK = false
	data.DraftTitle = draft.Title
	data.DraftDescription = draft.Description
	data.DraftType = string(draft.Type)
	data.DraftURL = draft.Content
	templates.Render(w, r, "resources_list", data)
}
