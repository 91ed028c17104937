// internal/app/features/home/handler.go
package home

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
)

// Testimonial is a quote shown in the landing page carousel.
type Testimonial struct {
	Quote     string
	Name      string
	Role      string
	AvatarURL string
}

var testimonials = []Testimonial{
	{
		Quote: "NurseHub has become an indispensable tool for my practice. The ability to quickly get a second opinion on a complex case from a trusted network is invaluable.",
		Name:  "Emily Carter",
		Role:  "Cardiac Nurse",
	},
	{
		Quote: "The AI assistant has genuinely surprised me with how useful it is. It's like having a brilliant research assistant available 24/7.",
		Name:  "Ben Harrison",
		Role:  "Neuro ICU Nurse",
	},
	{
		Quote: "As a recent graduate, the resource hub and the mentorship I've found on this platform have been instrumental in building my confidence and skills.",
		Name:  "Maria Garcia",
		Role:  "General Practice Nurse",
	},
}

// Handler serves the public landing and privacy pages.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeRoot renders the landing page.
// GET /
//
// Signed-in users are sent straight to the feed. An invitation link
// arrives here as /?token=...; it is forwarded to the signup form so
// the token never lingers in the landing URL.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if token := r.URL.Query().Get("token"); token != "" {
		http.Redirect(w, r, "/signup?token="+url.QueryEscape(token), http.StatusSeeOther)
		return
	}
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, views.Path(views.Feed), http.StatusSeeOther)
		return
	}

	data := struct {
		viewdata.BaseVM
		Testimonials []Testimonial
	}{
		BaseVM:       viewdata.NewBaseVM(r, "Welcome", views.Landing),
		Testimonials: testimonials,
	}

	templates.Render(w, r, "home", data)
}

// ServePrivacy renders the privacy policy.
// GET /privacy
func (h *Handler) ServePrivacy(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "Privacy Policy", views.Landing),
	}

	templates.Render(w, r, "privacy", data)
}
