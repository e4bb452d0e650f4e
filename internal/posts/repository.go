package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"network/internal/database"
)

var (
	ErrPostNotFound = errors.New("post not found")
	// ErrNotOwner is returned when a user tries to edit someone else's post
	ErrNotOwner = errors.New("not the post owner")
)

// Store defines the typed persistence operations for posts.
// viewerID parameterizes the per-viewer Liked flag on list reads; pass
// uuid.Nil for anonymous viewers.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, content string) (*Post, error)
	GetByID(ctx context.Context, postID int64) (*Post, error)
	ListAll(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]Post, int64, error)
	ListFollowing(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]Post, int64, error)
	ListByAuthorAsc(ctx context.Context, viewerID, authorID uuid.UUID) ([]Post, error)
	UpdateContent(ctx context.Context, postID int64, content string) error
}

// postColumns is shared by every read query; $1 is always the viewer ID.
const postColumns = `
	p.post_id, p.user_id, u.username, p.content,
	(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.post_id) AS like_count,
	EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.post_id AND l.user_id = $1) AS liked,
	p.created_at, p.updated_at
`

type pgStore struct {
	db database.Service
}

// NewStore creates a Postgres-backed post store.
func NewStore(db database.Service) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Create(ctx context.Context, userID uuid.UUID, content string) (*Post, error) {
	const q = `
		INSERT INTO posts (user_id, content)
		VALUES ($1, $2)
		RETURNING post_id, created_at, updated_at
	`

	post := &Post{UserID: userID, Content: content}
	err := s.db.QueryRow(ctx, q, userID, content).Scan(&post.PostID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return post, nil
}

func (s *pgStore) GetByID(ctx context.Context, postID int64) (*Post, error) {
	q := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.post_id = $2
	`

	post := &Post{}
	err := s.db.QueryRow(ctx, q, uuid.Nil, postID).Scan(
		&post.PostID,
		&post.UserID,
		&post.Author,
		&post.Content,
		&post.LikeCount,
		&post.Liked,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return post, nil
}

func (s *pgStore) ListAll(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]Post, int64, error) {
	var totalCount int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	page = clampPage(page, totalCount, pageSize)
	offset := (page - 1) * pageSize

	q := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.post_id DESC
		LIMIT $2 OFFSET $3
	`

	posts, err := s.queryRows(ctx, q, viewerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return posts, totalCount, nil
}

func (s *pgStore) ListFollowing(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]Post, int64, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM posts p
		WHERE p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
	`

	var totalCount int64
	if err := s.db.QueryRow(ctx, countQuery, viewerID).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count following posts: %w", err)
	}

	page = clampPage(page, totalCount, pageSize)
	offset := (page - 1) * pageSize

	q := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC, p.post_id DESC
		LIMIT $2 OFFSET $3
	`

	posts, err := s.queryRows(ctx, q, viewerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	return posts, totalCount, nil
}

// ListByAuthorAsc returns all of an author's posts oldest-first, the order
// the profile page displays them in.
func (s *pgStore) ListByAuthorAsc(ctx context.Context, viewerID, authorID uuid.UUID) ([]Post, error) {
	q := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $2
		ORDER BY p.created_at ASC, p.post_id ASC
	`

	return s.queryRows(ctx, q, viewerID, authorID)
}

func (s *pgStore) UpdateContent(ctx context.Context, postID int64, content string) error {
	const q = `
		UPDATE posts
		SET content = $1, updated_at = NOW()
		WHERE post_id = $2
	`

	res, err := s.db.Exec(ctx, q, content, postID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (s *pgStore) queryRows(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		err := rows.Scan(
			&post.PostID,
			&post.UserID,
			&post.Author,
			&post.Content,
			&post.LikeCount,
			&post.Liked,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// clampPage mirrors the behavior users expect from paginated pages: pages
// below 1 become 1 and pages past the end resolve to the last page.
func clampPage(page int, totalCount int64, pageSize int) int {
	if page < 1 {
		return 1
	}
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
