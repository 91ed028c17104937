// Package contentpolicy provides the pure role-gating rules for rendering
// and interaction.
//
// Authorization rules:
//   - PENDING accounts may browse the feed, resources, and blogs but may
//     not create or interact; screens show an "account pending" notice in
//     place of creation controls.
//   - NURSE has full creation and interaction rights.
//   - ADMIN browses like a nurse, may not create feed posts, and is the
//     only role with the moderation workflow.
//
// These checks decide what to render. The backend enforces the same rules
// authoritatively; a mismatch surfaces as an API error, never as a crash.
package contentpolicy

import (
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Action names an interaction the UI may offer.
type Action string

const (
	ActionPost           Action = "post"
	ActionComment        Action = "comment"
	ActionReact          Action = "react"
	ActionEditPost       Action = "edit_post" // role gate only; author check is separate
	ActionCreateResource Action = "create_resource"
	ActionCreateBlog     Action = "create_blog"
	ActionInvite         Action = "invite"
	ActionModerate       Action = "moderate"
)

// CanView reports whether a role may see a view's content. Every
// signed-in role may browse all content views; only the admin screen's
// content is restricted. (Reaching a view is never blocked at the
// routing layer; this governs what the screen renders.)
func CanView(v views.View, role models.Role) bool {
	if v == views.Admin {
		return role == models.RoleAdmin
	}
	return true
}

// CanAct reports whether a role may perform an interactive action.
func CanAct(a Action, role models.Role) bool {
	switch role {
	case models.RolePending:
		return false
	case models.RoleNurse:
		return a != ActionModerate
	case models.RoleAdmin:
		switch a {
		// Admins review the feed; they do not publish to it. Comments and
		// reactions stay open so moderation questions can be answered
		// in-thread.
		case ActionPost, ActionEditPost:
			return false
		default:
			return true
		}
	}
	return false
}

// CanEditPost combines the role gate with post ownership.
func CanEditPost(id models.Identity, p models.Post) bool {
	return CanAct(ActionEditPost, id.Role) && p.Author.ID == id.ID
}
