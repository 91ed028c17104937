// internal/app/gateway/posts.go
package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nursehub/nursehub/internal/domain/models"
)

// PostDraft is the form payload for creating a feed post.
type PostDraft struct {
	Text                  string
	Tags                  []string
	DisplayNamePreference models.DisplayNamePreference
	Media                 *Upload
}

// Posts lists the feed, newest first. A non-empty tag scopes the list
// server-side to posts carrying that tag.
func (c *Client) Posts(ctx context.Context, token, tag string) ([]models.Post, error) {
	path := "/posts"
	if tag != "" {
		path += "?tag=" + url.QueryEscape(tag)
	}
	var posts []models.Post
	err := c.getJSON(ctx, token, path, &posts)
	return posts, err
}

// CreatePost publishes a new post. The display-name preference travels
// with the draft; the backend snapshots the resolved display name onto
// the stored post.
func (c *Client) CreatePost(ctx context.Context, token string, draft PostDraft) (models.Post, error) {
	fields := map[string][]string{
		"text":                  {draft.Text},
		"displayNamePreference": {string(draft.DisplayNamePreference)},
	}
	if len(draft.Tags) > 0 {
		fields["tags"] = draft.Tags
	}
	var files []Upload
	if draft.Media != nil {
		m := *draft.Media
		m.Field = "mediaFile"
		files = append(files, m)
	}
	var post models.Post
	err := c.sendMultipart(ctx, token, "/posts", fields, files, &post)
	return post, err
}

// UpdatePost edits an existing post's text and tags.
func (c *Client) UpdatePost(ctx context.Context, token, postID, text string, tags []string) (models.Post, error) {
	var post models.Post
	err := c.sendJSON(ctx, token, http.MethodPut, "/posts/"+postID, map[string]any{
		"text": text,
		"tags": tags,
	}, &post)
	return post, err
}

// ToggleReaction adds the reaction if absent, removes it if present.
func (c *Client) ToggleReaction(ctx context.Context, token, postID string, t models.ReactionType) error {
	return c.sendJSON(ctx, token, http.MethodPost, "/posts/"+postID+"/reactions", map[string]string{
		"type": string(t),
	}, nil)
}

// AddComment appends a comment to a post.
func (c *Client) AddComment(ctx context.Context, token, postID, text string) (models.Comment, error) {
	var comment models.Comment
	err := c.sendJSON(ctx, token, http.MethodPost, "/posts/"+postID+"/comments", map[string]string{
		"text": text,
	}, &comment)
	return comment, err
}
