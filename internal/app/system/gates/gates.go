// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, rendering appropriate
// error pages when checks fail.
//
// # Three-Tier Authorization Pattern
//
//  1. Route-Level Middleware (auth.RequireSignedIn, auth.RequireRole)
//     Applied in routes.go files for coarse-grained access control.
//     When middleware handles role checking, handlers don't need gates.
//
//  2. Handler-Level Gates (this package)
//     Used in handlers that need role checks WITHOUT route-level
//     middleware, or different requirements than the route group.
//     Gates render error pages and return user context.
//
//  3. Policy Layer (internal/app/policy/*)
//     Pure functions answering "may this role do this action" for
//     fine-grained decisions (posting, reacting, moderating). Policies
//     return booleans; callers handle rendering.
//
// Don't use gates in handlers behind role-specific middleware; use
// authz.UserCtx(r) there to read user context without re-checking.
package gates

import (
	"net/http"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/system/authz"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   models.Role
	Name   string
	UserID string
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not, it renders an unauthorized error and returns OK=false.
// The loginURL parameter specifies where to redirect for login.
func RequireAuth(w http.ResponseWriter, r *http.Request, loginURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, loginURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdmin ensures the user is authenticated and has the ADMIN role.
// If not authenticated, renders unauthorized; if authenticated but not
// admin, renders forbidden with the provided message and fallback URL.
func RequireAdmin(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if role != models.RoleAdmin {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireApproved ensures the user is authenticated and past account
// approval (NURSE or ADMIN). PENDING users get the forbidden page; they
// may browse but hold no write rights.
func RequireApproved(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if role == models.RolePending {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAnyRole ensures the user is authenticated and holds one of the
// specified roles.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string, allowed ...models.Role) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	for _, want := range allowed {
		if role == want {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}
	uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
	return Result{OK: false}
}
