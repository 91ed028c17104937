// internal/app/system/views/views.go

// Package views is the single enumeration of the application's screens.
//
// Exactly one view is active per request; there is no history stack.
// "Back" links resolve to a fixed parent view, not to wherever the user
// actually came from. Detail views carry their selected entity id in the
// URL; a detail URL that cannot be resolved renders an empty state.
package views

import "github.com/nursehub/nursehub/internal/domain/models"

// View names a screen in the main region.
type View string

const (
	Landing View = "LANDING"
	Login   View = "LOGIN"
	Signup  View = "SIGNUP"

	Feed        View = "FEED"
	Profile     View = "PROFILE"
	Resources   View = "RESOURCES"
	Blogs       View = "BLOGS"
	Invitations View = "INVITATIONS"
	Admin       View = "ADMIN"
	Assistant   View = "ASSISTANT"

	SinglePost     View = "SINGLE_POST"
	SingleResource View = "SINGLE_RESOURCE"
	SingleBlog     View = "SINGLE_BLOG"
)

// Path returns the canonical URL of a list-level view.
func Path(v View) string {
	switch v {
	case Landing:
		return "/"
	case Login:
		return "/login"
	case Signup:
		return "/signup"
	case Feed:
		return "/feed"
	case Profile:
		return "/profile"
	case Resources:
		return "/resources"
	case Blogs:
		return "/blogs"
	case Invitations:
		return "/invitations"
	case Admin:
		return "/admin"
	case Assistant:
		return "/assistant"
	case SinglePost:
		return "/feed/posts"
	case SingleResource:
		return "/resources/view"
	case SingleBlog:
		return "/blogs/view"
	}
	return "/"
}

// PathWithEntity returns the URL of a detail view for a selected entity.
// An empty id yields the detail route without a selection, which renders
// the view's empty state.
func PathWithEntity(v View, id string) string {
	base := Path(v)
	if id == "" {
		return base
	}
	return base + "/" + id
}

// Parent is the fixed view a detail screen's "back" control returns to.
func Parent(v View) View {
	switch v {
	case SinglePost:
		return Feed
	case SingleResource:
		return Resources
	case SingleBlog:
		return Blogs
	default:
		return Feed
	}
}

// NavItem is one entry in the signed-in header navigation.
type NavItem struct {
	View  View
	Label string
	Path  string
}

// NavItems returns the header navigation for a role. Navigation to ADMIN
// is listed only for admins, but reaching /admin by URL is never blocked
// at the routing layer; the admin screen gates its own rendering.
func NavItems(role models.Role) []NavItem {
	items := []NavItem{
		{Feed, "Feed", Path(Feed)},
		{Resources, "Resources", Path(Resources)},
		{Blogs, "Blogs", Path(Blogs)},
		{Invitations, "My Invitations", Path(Invitations)},
		{Profile, "Profile", Path(Profile)},
	}
	if role == models.RoleAdmin {
		items = append(items, NavItem{Admin, "Admin Panel", Path(Admin)})
	}
	return items
}
