// internal/app/gateway/content.go
package gateway

import (
	"context"

	"github.com/nursehub/nursehub/internal/domain/models"
)

// ResourceDraft is the form payload for submitting a library resource.
// For LINK resources Content carries the URL; for FILE resources File
// carries the upload. The backend stores either as PENDING.
type ResourceDraft struct {
	Title       string
	Description string
	Type        models.ResourceType
	Content     string
	File        *Upload
}

// BlogDraft is the form payload for submitting a blog article.
type BlogDraft struct {
	Title      string
	Content    string
	CoverImage *Upload
}

// Resources lists approved library resources.
func (c *Client) Resources(ctx context.Context, token string) ([]models.Resource, error) {
	var out []models.Resource
	err := c.getJSON(ctx, token, "/resources", &out)
	return out, err
}

// CreateResource submits a resource for moderation.
func (c *Client) CreateResource(ctx context.Context, token string, draft ResourceDraft) (models.Resource, error) {
	fields := map[string][]string{
		"title": {draft.Title},
		"type":  {string(draft.Type)},
	}
	if draft.Description != "" {
		fields["description"] = []string{draft.Description}
	}
	if draft.Content != "" {
		fields["content"] = []string{draft.Content}
	}
	var files []Upload
	if draft.File != nil {
		f := *draft.File
		f.Field = "file"
		files = append(files, f)
	}
	var out models.Resource
	err := c.sendMultipart(ctx, token, "/resources", fields, files, &out)
	return out, err
}

// Blogs lists approved blog articles.
func (c *Client) Blogs(ctx context.Context, token string) ([]models.Blog, error) {
	var out []models.Blog
	err := c.getJSON(ctx, token, "/blogs", &out)
	return out, err
}

// CreateBlog submits a blog article for moderation.
func (c *Client) CreateBlog(ctx context.Context, token string, draft BlogDraft) (models.Blog, error) {
	fields := map[string][]string{
		"title":   {draft.Title},
		"content": {draft.Content},
	}
	var files []Upload
	if draft.CoverImage != nil {
		f := *draft.CoverImage
		f.Field = "coverImage"
		files = append(files, f)
	}
	var out models.Blog
	err := c.sendMultipart(ctx, token, "/blogs", fields, files, &out)
	return out, err
}
