package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"network/internal/likes"
)

// feedPageSize is the number of posts per feed page.
const feedPageSize = 5

const (
	feedCacheTTL = 2 * time.Minute
)

// Service handles post business logic. Feed pages are cached in Redis and
// invalidated on every write; when Redis is unreachable the service runs
// uncached.
type Service struct {
	store Store
	likes likes.Service
	cache *redis.Client
}

// NewService creates a posts service with a Redis feed cache.
func NewService(store Store, likeSvc likes.Service, redisAddr, redisPassword string, redisDB int) *Service {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, feed caching disabled", "error", err.Error())
		rdb = nil
	}

	return &Service{
		store: store,
		likes: likeSvc,
		cache: rdb,
	}
}

// Feed returns one page of all posts, newest-first.
func (s *Service) Feed(ctx context.Context, viewerID uuid.UUID, page int) (*FeedPage, error) {
	cacheKey := fmt.Sprintf("feed:all:%s:page:%d", viewerID, page)
	if cached := s.cachedPage(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	posts, totalCount, err := s.store.ListAll(ctx, viewerID, page, feedPageSize)
	if err != nil {
		return nil, err
	}

	result := s.buildPage(posts, totalCount, page)
	s.storePage(ctx, cacheKey, result)
	return result, nil
}

// FollowingFeed returns one page of posts authored by users the viewer
// follows, newest-first.
func (s *Service) FollowingFeed(ctx context.Context, viewerID uuid.UUID, page int) (*FeedPage, error) {
	posts, totalCount, err := s.store.ListFollowing(ctx, viewerID, page, feedPageSize)
	if err != nil {
		return nil, err
	}

	return s.buildPage(posts, totalCount, page), nil
}

// ProfilePosts returns all of a user's posts oldest-first.
func (s *Service) ProfilePosts(ctx context.Context, viewerID, authorID uuid.UUID) ([]Post, error) {
	return s.store.ListByAuthorAsc(ctx, viewerID, authorID)
}

// CreatePost creates a post owned by userID. Content is stored as given;
// empty content is accepted.
func (s *Service) CreatePost(ctx context.Context, userID uuid.UUID, content string) (*Post, error) {
	post, err := s.store.Create(ctx, userID, content)
	if err != nil {
		return nil, err
	}

	s.invalidateFeedCache(ctx)
	return post, nil
}

// GetPost retrieves a single post by ID.
func (s *Service) GetPost(ctx context.Context, postID int64) (*Post, error) {
	return s.store.GetByID(ctx, postID)
}

// EditContent replaces a post's content. Only the owning user may edit;
// anyone else gets ErrNotOwner.
func (s *Service) EditContent(ctx context.Context, postID int64, actorID uuid.UUID, content string) error {
	post, err := s.store.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != actorID {
		return ErrNotOwner
	}

	if err := s.store.UpdateContent(ctx, postID, content); err != nil {
		return err
	}

	s.invalidateFeedCache(ctx)
	return nil
}

// SetLiked sets the actor's like membership on a post. Idempotent with
// respect to final state.
func (s *Service) SetLiked(ctx context.Context, actorID uuid.UUID, postID int64, liked bool) error {
	if err := s.likes.SetLiked(ctx, actorID, postID, liked); err != nil {
		return err
	}

	s.invalidateFeedCache(ctx)
	return nil
}

func (s *Service) buildPage(posts []Post, totalCount int64, page int) *FeedPage {
	page = clampPage(page, totalCount, feedPageSize)

	totalPages := int(totalCount) / feedPageSize
	if int(totalCount)%feedPageSize != 0 {
		totalPages++
	}

	return &FeedPage{
		Posts:      posts,
		Page:       page,
		PageSize:   feedPageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

func (s *Service) cachedPage(ctx context.Context, key string) *FeedPage {
	if s.cache == nil {
		return nil
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}

	var page FeedPage
	if err := json.Unmarshal([]byte(cached), &page); err != nil {
		return nil
	}
	return &page
}

func (s *Service) storePage(ctx context.Context, key string, page *FeedPage) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, data, feedCacheTTL)
}

func (s *Service) invalidateFeedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, "feed:all:*", 100).Iterator()
	for iter.Next(ctx) {
		s.cache.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Feed cache invalidation failed", "error", err.Error())
	}
}
