package widgets

import (
	"github.com/dustin/go-humanize"

	"lancini/internal/app/model"
)

// ProjectDialog is the detail modal of a project. Liked and Loading are owned by the
// hosting page; the dialog only posts to LikeAction.
type ProjectDialog struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Tags        []string
	Link        string
	Likes       string
	Views       string

	Liked      bool
	Loading    bool
	LikeAction string
}

// NewProjectDialog builds the dialog for p. imageURL is the resolved image address,
// empty when the project has none.
func NewProjectDialog(p model.Project, imageURL string, liked, loading bool, likeAction string) ProjectDialog {
	return ProjectDialog{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    imageURL,
		Tags:        append([]string{}, p.Tags...),
		Link:        p.Link,
		Likes:       humanize.Comma(int64(p.Likes)),
		Views:       humanize.Comma(int64(p.Views)),
		Liked:       liked,
		Loading:     loading,
		LikeAction:  likeAction,
	}
}

// LikeLabel is the text of the like button.
func (d ProjectDialog) LikeLabel() string {
	switch {
	case d.Loading:
		return "..."
	case d.Liked:
		return "Liked"
	default:
		return "Like"
	}
}
