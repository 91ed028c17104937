// internal/app/gateway/invitations.go
package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nursehub/nursehub/internal/domain/models"
)

// SendInvitation issues an invite to a colleague's email address.
func (c *Client) SendInvitation(ctx context.Context, token, email string) (models.Invitation, error) {
	var out models.Invitation
	err := c.sendJSON(ctx, token, http.MethodPost, "/invitations", map[string]string{
		"invitee_email": email,
	}, &out)
	return out, err
}

// SentInvitations lists the invitations the caller has sent, with their
// current accepted/pending status.
func (c *Client) SentInvitations(ctx context.Context, token string) ([]models.Invitation, error) {
	var out []models.Invitation
	err := c.getJSON(ctx, token, "/invitations/sent", &out)
	return out, err
}

// ValidateInvitation resolves an invitation token to the email it was
// issued for. It is unauthenticated: the invitee has no account yet.
func (c *Client) ValidateInvitation(ctx context.Context, invitationToken string) (models.InvitationClaim, error) {
	var out models.InvitationClaim
	err := c.getJSON(ctx, "", "/invitations/validate/"+url.PathEscape(invitationToken), &out)
	return out, err
}
