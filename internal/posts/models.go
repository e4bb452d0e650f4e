package posts

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a short text update authored by a user.
// Author, LikeCount and Liked are denormalized for display and filled by
// the list queries; Liked is relative to the requesting viewer.
type Post struct {
	PostID    int64     `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedPage is one page of a reverse-chronological feed.
type FeedPage struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalCount int64  `json:"total_count"`
	TotalPages int    `json:"total_pages"`
}

// HasPrev reports whether a previous page exists.
func (p *FeedPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a further page exists.
func (p *FeedPage) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the preceding page number.
func (p *FeedPage) PrevPage() int { return p.Page - 1 }

// NextPage returns the following page number.
func (p *FeedPage) NextPage() int { return p.Page + 1 }

// EditPostRequest is the PUT body for /posts/:id. Exactly one of the two
// fields is expected: Content replaces the post text (owner only), Likes
// sets the viewer's membership in the post's liked-by set.
type EditPostRequest struct {
	Content *string `json:"content"`
	Likes   *bool   `json:"likes"`
}
