// internal/domain/models/content.go
package models

// ContentStatus is the moderation lifecycle shared by resources, blogs,
// and (with different wording) user accounts: PENDING until an admin
// approves, APPROVED thereafter. There is no rejection state.
type ContentStatus string

const (
	StatusPending  ContentStatus = "PENDING"
	StatusApproved ContentStatus = "APPROVED"
)

// ContentKind tags a moderatable item with its variant explicitly.
// Callers must switch on Kind, never infer the variant from which
// optional fields happen to be set.
type ContentKind string

const (
	KindResource ContentKind = "resource"
	KindBlog     ContentKind = "blog"
)

// ResourceType distinguishes link resources from uploaded files.
type ResourceType string

const (
	ResourceLink ResourceType = "LINK"
	ResourceFile ResourceType = "FILE"
)

// Resource is a shared library entry. Exactly one of Content (a URL, for
// LINK) or FileURL (for FILE) is populated, matching Type.
type Resource struct {
	ID          string        `json:"id"`
	Author      Identity      `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Type        ResourceType  `json:"type"`
	Content     string        `json:"content,omitempty"`
	FileURL     string        `json:"file_url,omitempty"`
	Status      ContentStatus `json:"status"`
	CreatedAt   string        `json:"created_at"`
}

// Kind implements the explicit variant tag for Resource.
func (Resource) Kind() ContentKind { return KindResource }

// Blog is a long-form article with rich HTML content. Content must be
// sanitized before rendering; it is user-authored markup.
type Blog struct {
	ID            string        `json:"id"`
	Author        Identity      `json:"author"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	CoverImageURL string        `json:"coverImageUrl,omitempty"`
	Status        ContentStatus `json:"status"`
	CreatedAt     string        `json:"created_at"`
}

// Kind implements the explicit variant tag for Blog.
func (Blog) Kind() ContentKind { return KindBlog }

// Moderatable is what the approval preview works with: either variant,
// identified by its explicit kind tag.
type Moderatable interface {
	Kind() ContentKind
}
