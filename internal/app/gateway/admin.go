// internal/app/gateway/admin.go
package gateway

import (
	"context"
	"net/http"

	"github.com/nursehub/nursehub/internal/domain/models"
)

// PendingUsers lists accounts awaiting activation.
func (c *Client) PendingUsers(ctx context.Context, token string) ([]models.Identity, error) {
	var out []models.Identity
	err := c.getJSON(ctx, token, "/admin/pending-users", &out)
	return out, err
}

// ApproveUser activates a PENDING account (role becomes NURSE). A
// concurrent approval by another admin surfaces as ErrAlreadyApproved.
func (c *Client) ApproveUser(ctx context.Context, token, userID string) (models.Identity, error) {
	var out models.Identity
	err := c.do(ctx, token, http.MethodPut, "/admin/approve-user/"+userID, nil, "", &out)
	return out, err
}

// PendingResources lists resources awaiting moderation.
func (c *Client) PendingResources(ctx context.Context, token string) ([]models.Resource, error) {
	var out []models.Resource
	err := c.getJSON(ctx, token, "/admin/pending-resources", &out)
	return out, err
}

// ApproveResource publishes a PENDING resource platform-wide.
func (c *Client) ApproveResource(ctx context.Context, token, resourceID string) (models.Resource, error) {
	var out models.Resource
	err := c.do(ctx, token, http.MethodPut, "/admin/approve-resource/"+resourceID, nil, "", &out)
	return out, err
}

// PendingBlogs lists blog articles awaiting moderation.
func (c *Client) PendingBlogs(ctx context.Context, token string) ([]models.Blog, error) {
	var out []models.Blog
	err := c.getJSON(ctx, token, "/admin/pending-blogs", &out)
	return out, err
}

// ApproveBlog publishes a PENDING blog platform-wide.
func (c *Client) ApproveBlog(ctx context.Context, token, blogID string) (models.Blog, error) {
	var out models.Blog
	err := c.do(ctx, token, http.MethodPut, "/admin/approve-blog/"+blogID, nil, "", &out)
	return out, err
}
