// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// UserCtx returns the user's role, name, id, and a found flag.
// If no user is present in context it returns RolePending, "", "", false
// so callers that forget to check ok still fail closed: PENDING holds no
// write rights anywhere.
func UserCtx(r *http.Request) (role models.Role, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.RolePending, "", "", false
	}
	return user.Identity.Role, user.Identity.Name, user.Identity.ID, true
}

// Identity returns the full cached identity for the current request.
func Identity(r *http.Request) (models.Identity, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.Identity{}, false
	}
	return user.Identity, true
}

// Token returns the backend bearer token for the current request.
func Token(r *http.Request) (string, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", false
	}
	return user.Token, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsPending reports whether the current request's user is awaiting
// account approval.
func IsPending(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RolePending
}

// HasAnyRole reports whether the current request's user has any of the
// given roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	cur, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if cur == want {
			return true
		}
	}
	return false
}
