// Package follow manages the directed follower/followee relationship
// between users.
package follow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"network/internal/database"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrSelfFollow is returned when a user attempts to follow themselves
	ErrSelfFollow = errors.New("cannot follow yourself")
)

type Service interface {
	// Toggle atomically flips the follower->followee relationship against
	// stored state and reports whether the follower now follows the followee.
	Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	FollowersCount(ctx context.Context, userID uuid.UUID) (int64, error)
	FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	db database.Service
}

func NewService(db database.Service) Service {
	return &service{db: db}
}

// Toggle removes the relationship when it exists and creates it otherwise,
// in a single statement. The current state is read from the table, never
// from the client, so concurrent double-submissions cannot desync it.
func (s *service) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if followerID == uuid.Nil || followeeID == uuid.Nil {
		return false, ErrInvalidInput
	}
	if followerID == followeeID {
		return false, ErrSelfFollow
	}

	const q = `
		WITH removed AS (
			DELETE FROM follows
			WHERE follower_id=$1 AND followee_id=$2
			RETURNING 1
		)
		INSERT INTO follows (follower_id, followee_id)
		SELECT $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM removed)
	`

	res, err := s.db.Exec(ctx, q, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("toggle follow: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return inserted > 0, nil
}

func (s *service) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	const q = `SELECT 1 FROM follows WHERE follower_id=$1 AND followee_id=$2 LIMIT 1`

	var one int
	err := s.db.QueryRow(ctx, q, followerID, followeeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query follow: %w", err)
	}
	return true, nil
}

func (s *service) FollowersCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `SELECT COUNT(*) FROM follows WHERE followee_id=$1`

	var cnt int64
	err := s.db.QueryRow(ctx, q, userID).Scan(&cnt)
	return cnt, err
}

func (s *service) FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `SELECT COUNT(*) FROM follows WHERE follower_id=$1`

	var cnt int64
	err := s.db.QueryRow(ctx, q, userID).Scan(&cnt)
	return cnt, err
}
