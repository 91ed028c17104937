// internal/domain/models/post.go
package models

// ReactionType enumerates the reactions a post can receive.
type ReactionType string

const (
	ReactionHeart   ReactionType = "HEART"
	ReactionSupport ReactionType = "SUPPORT"
)

// Reaction is a single (user, post, type) mark. The backend enforces at
// most one reaction of a given type per user per post; re-issuing the
// same reaction removes it (toggle).
type Reaction struct {
	ID     string       `json:"id"`
	UserID string       `json:"userId"`
	PostID string       `json:"postId"`
	Type   ReactionType `json:"type"`
}

// Comment is an append-only note owned by a Post.
type Comment struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Author    Identity `json:"author"`
	CreatedAt string   `json:"createdAt"`
}

// Post is a feed item. Posts are not subject to the approval lifecycle.
//
// DisplayName is a snapshot chosen at creation time from the author's
// display-name preference and never changes afterwards, even if the
// author's profile does. Author is still carried in full so edit rights
// can be checked; templates must render DisplayName, not Author.Name.
type Post struct {
	ID          string     `json:"id"`
	Author      Identity   `json:"author"`
	Text        string     `json:"text"`
	Tags        []string   `json:"tags,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
	MediaURL    string     `json:"mediaUrl,omitempty"`
	MediaType   string     `json:"mediaType,omitempty"` // "image" or "video"
	CreatedAt   string     `json:"createdAt"`
	Comments    []Comment  `json:"comments"`
	Reactions   []Reaction `json:"reactions"`
}

// AnonymousDisplayName is the displayName stored for anonymous posts.
const AnonymousDisplayName = "Anonymous"

// IsAnonymous reports whether the post was published anonymously.
func (p Post) IsAnonymous() bool { return p.DisplayName == AnonymousDisplayName }

// ShownName is the name templates render for the post's byline.
func (p Post) ShownName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Author.Name
}

// ReactionCount counts reactions of one type.
func (p Post) ReactionCount(t ReactionType) int {
	n := 0
	for _, r := range p.Reactions {
		if r.Type == t {
			n++
		}
	}
	return n
}

// HasReacted reports whether userID currently has a reaction of type t.
func (p Post) HasReacted(userID string, t ReactionType) bool {
	for _, r := range p.Reactions {
		if r.UserID == userID && r.Type == t {
			return true
		}
	}
	return false
}
