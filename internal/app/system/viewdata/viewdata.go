// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// SiteName is the platform's display name, rendered in the header and
// page titles.
const SiteName = "NurseHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", views.Feed),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       models.Role
	UserName   string
	AvatarURL  string

	// Derived role flags for templates
	IsAdmin   bool
	IsPending bool

	// Page context
	Title       string
	ActiveView  views.View
	BackURL     string
	CurrentPath string

	// Header navigation for the current role
	Nav []views.NavItem

	// CSRF protection
	CSRFToken string
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// active is the view the page belongs to; it drives nav highlighting and
// the back link, which resolves to the view's fixed parent rather than
// browser history.
func NewBaseVM(r *http.Request, title string, active views.View) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		ActiveView:  active,
		BackURL:     httpnav.ResolveBackURL(r, views.Path(views.Parent(active))),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Role = u.Identity.Role
		vm.UserName = u.Identity.Name
		vm.AvatarURL = u.Identity.AvatarURL
		vm.IsAdmin = u.Identity.Role == models.RoleAdmin
		vm.IsPending = u.Identity.Role == models.RolePending
		vm.Nav = views.NavItems(u.Identity.Role)
	}

	return vm
}
