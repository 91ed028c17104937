// internal/app/features/feed/types.go
package feed

import (
	"context"

	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Gateway is the slice of the API client the feed needs.
type Gateway interface {
	Posts(ctx context.Context, token, tag string) ([]models.Post, error)
	CreatePost(ctx context.Context, token string, draft gateway.PostDraft) (models.Post, error)
	UpdatePost(ctx context.Context, token, postID, text string, tags []string) (models.Post, error)
	ToggleReaction(ctx context.Context, token, postID string, t models.ReactionType) error
	AddComment(ctx context.Context, token, postID, text string) (models.Comment, error)
}

type commentVM struct {
	AuthorName string
	AvatarURL  string
	Text       string
	CreatedAt  string
}

// postVM is one rendered feed card. Bylines come from the post's
// display-name snapshot, never from the author's current profile.
type postVM struct {
	ID          string
	ShownName   string
	AvatarURL   string
	IsAnonymous bool
	Text        string
	Tags        []string
	MediaURL    string
	MediaType   string
	CreatedAt   string

	HeartCount      int
	SupportCount    int
	ViewerHearted   bool
	ViewerSupported bool

	CanReact   bool
	CanComment bool
	CanEdit    bool

	Comments []commentVM

	// Needed because the card renders standalone as an HTMX partial.
	CSRFToken string
}

type feedData struct {
	viewdata.BaseVM
	Posts     []postVM
	ActiveTag string

	CanPost           bool
	ShowPendingNotice bool
	ShowAdminNotice   bool

	// Create-form state carried across a failed submit.
	FormError    string
	DraftText    string
	DraftTags    string
	DisplayPrefs []displayPrefOption
}

type displayPrefOption struct {
	Value    models.DisplayNamePreference
	Label    string
	Preview  string
	Selected bool
}

type singlePostData struct {
	viewdata.BaseVM
	Found bool
	Post  postVM
}

type editPostData struct {
	viewdata.BaseVM
	PostID    string
	DraftText string
	DraftTags string
	FormError string
}

// buildPostVM projects a post for a viewer: reaction state, edit rights,
// and the snapshot byline.
func buildPostVM(p models.Post, viewer models.Identity) postVM {
	vm := postVM{
		ID:          p.ID,
		ShownName:   p.ShownName(),
		IsAnonymous: p.IsAnonymous(),
		Text:        p.Text,
		Tags:        p.Tags,
		MediaURL:    p.MediaURL,
		MediaType:   p.MediaType,
		CreatedAt:   p.CreatedAt,

		HeartCount:      p.ReactionCount(models.ReactionHeart),
		SupportCount:    p.ReactionCount(models.ReactionSupport),
		ViewerHearted:   p.HasReacted(viewer.ID, models.ReactionHeart),
		ViewerSupported: p.HasReacted(viewer.ID, models.ReactionSupport),

		CanReact:   contentpolicy.CanAct(contentpolicy.ActionReact, viewer.Role),
		CanComment: contentpolicy.CanAct(contentpolicy.ActionComment, viewer.Role),
		CanEdit:    contentpolicy.CanEditPost(viewer, p),
	}
	if !vm.IsAnonymous {
		vm.AvatarURL = p.Author.AvatarURL
	}
	for _, c := range p.Comments {
		vm.Comments = append(vm.Comments, commentVM{
			AuthorName: c.Author.Name,
			AvatarURL:  c.Author.AvatarURL,
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
		})
	}
	return vm
}

// displayPrefOptions builds the byline choices for the confirmation
// step, previewing each against the author's profile.
func displayPrefOptions(author models.Identity, selected models.DisplayNamePreference) []displayPrefOption {
	prefs := []struct {
		value models.DisplayNamePreference
		label string
	}{
		{models.DisplayFullName, "Full name"},
		{models.DisplayInitials, "Initials"},
		{models.DisplayAnonymous, "Anonymous"},
	}
	opts := make([]displayPrefOption, 0, len(prefs))
	for _, p := range prefs {
		opts = append(opts, displayPrefOption{
			Value:    p.value,
			Label:    p.label,
			Preview:  models.FormatDisplayName(author, p.value),
			Selected: p.value == selected,
		})
	}
	return opts
}
