package comments

import (
	"time"

	"github.com/google/uuid"
)

// commentDateFormat matches the human-readable timestamp the page
// scripts render verbatim, e.g. "Aug 30 2026, 07:15 PM".
const commentDateFormat = "Jan 02 2006, 03:04 PM"

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    uuid.UUID
	Author    string
	Content   string
	CreatedAt time.Time
}

// commentJSON is the wire shape the comment list endpoint returns.
type commentJSON struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

func toJSON(comments []Comment) []commentJSON {
	out := make([]commentJSON, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentJSON{
			Author:  c.Author,
			Content: c.Content,
			Date:    c.CreatedAt.Format(commentDateFormat),
		})
	}
	return out
}
