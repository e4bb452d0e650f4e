// Package likes tracks which users have liked which posts.
// A like is set membership, not a counter: setting an existing like or
// clearing an absent one leaves the stored state unchanged.
package likes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"network/internal/database"
)

var ErrInvalidInput = errors.New("invalid input")

// Service writes like membership. Reads happen through the post queries,
// which compute per-post counts and the viewer's liked flag in SQL.
type Service interface {
	// SetLiked makes `liked` the membership state of user in the post's
	// liked-by set. Idempotent with respect to final state.
	SetLiked(ctx context.Context, userID uuid.UUID, postID int64, liked bool) error
}

type service struct {
	db database.Service
}

func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) SetLiked(ctx context.Context, userID uuid.UUID, postID int64, liked bool) error {
	if userID == uuid.Nil || postID == 0 {
		return ErrInvalidInput
	}

	if liked {
		const q = `
			INSERT INTO post_likes (post_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`
		if _, err := s.db.Exec(ctx, q, postID, userID); err != nil {
			return fmt.Errorf("insert like: %w", err)
		}
		return nil
	}

	const q = `DELETE FROM post_likes WHERE post_id=$1 AND user_id=$2`
	if _, err := s.db.Exec(ctx, q, postID, userID); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}
