package comments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"network/internal/database"
)

// Service handles comment persistence.
type Service interface {
	Create(ctx context.Context, postID int64, userID uuid.UUID, content string) error
	// ListByPost returns a post's comments newest-first.
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
}

type service struct {
	db database.Service
}

// NewService creates a Postgres-backed comment service.
func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) Create(ctx context.Context, postID int64, userID uuid.UUID, content string) error {
	const q = `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)`

	if _, err := s.db.Exec(ctx, q, postID, userID, content); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (s *service) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	const q = `
		SELECT c.comment_id, c.post_id, c.user_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.comment_id DESC`

	rows, err := s.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
