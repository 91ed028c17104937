// internal/app/gateway/auth.go
package gateway

import (
	"context"
	"net/http"

	"github.com/nursehub/nursehub/internal/domain/models"
)

// Login exchanges credentials for an access token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var sess models.Session
	err := c.sendJSON(ctx, "", http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &sess)
	return sess, err
}

// Signup registers a new account. With an invitation token the backend
// activates the account immediately; without one it is created PENDING.
func (c *Client) Signup(ctx context.Context, name, email, password, invitationToken string) error {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	if invitationToken != "" {
		body["invitationToken"] = invitationToken
	}
	return c.sendJSON(ctx, "", http.MethodPost, "/signup", body, nil)
}

// UserByID fetches one identity by id.
func (c *Client) UserByID(ctx context.Context, token, userID string) (models.Identity, error) {
	var u models.Identity
	err := c.getJSON(ctx, token, "/users/"+userID, &u)
	return u, err
}

// UpdateProfile saves the caller's own profile edits and returns the
// refreshed identity, including the recomputed completion percentage.
func (c *Client) UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (models.Identity, error) {
	var u models.Identity
	err := c.sendJSON(ctx, token, http.MethodPut, "/users/profile", patch, &u)
	return u, err
}
