package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockStore struct {
	posts      map[int64]*Post
	updated    map[int64]string
	listPosts  []Post
	totalCount int64
	listPage   int
	listErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		posts:   make(map[int64]*Post),
		updated: make(map[int64]string),
	}
}

func (m *mockStore) Create(ctx context.Context, userID uuid.UUID, content string) (*Post, error) {
	post := &Post{PostID: int64(len(m.posts) + 1), UserID: userID, Content: content}
	m.posts[post.PostID] = post
	return post, nil
}

func (m *mockStore) GetByID(ctx context.Context, postID int64) (*Post, error) {
	post, ok := m.posts[postID]
	if !ok {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (m *mockStore) ListAll(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]Post, int64, error) {
	m.listPage = page
	return m.listPosts, m.totalCount, m.listErr
}

func (m *mockStore) ListFollowing(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]Post, int64, error) {
	m.listPage = page
	return m.listPosts, m.totalCount, m.listErr
}

func (m *mockStore) ListByAuthorAsc(ctx context.Context, viewerID, authorID uuid.UUID) ([]Post, error) {
	return m.listPosts, m.listErr
}

func (m *mockStore) UpdateContent(ctx context.Context, postID int64, content string) error {
	if _, ok := m.posts[postID]; !ok {
		return ErrPostNotFound
	}
	m.updated[postID] = content
	return nil
}

type mockLikes struct {
	liked   map[int64]map[uuid.UUID]bool
	lastSet bool
	err     error
}

func newMockLikes() *mockLikes {
	return &mockLikes{liked: make(map[int64]map[uuid.UUID]bool)}
}

func (m *mockLikes) SetLiked(ctx context.Context, userID uuid.UUID, postID int64, liked bool) error {
	if m.err != nil {
		return m.err
	}
	if m.liked[postID] == nil {
		m.liked[postID] = make(map[uuid.UUID]bool)
	}
	m.liked[postID][userID] = liked
	m.lastSet = liked
	return nil
}

func (m *mockLikes) Count(ctx context.Context, postID int64) (int64, error) {
	var n int64
	for _, liked := range m.liked[postID] {
		if liked {
			n++
		}
	}
	return n, nil
}

func (m *mockLikes) IsLiked(ctx context.Context, userID uuid.UUID, postID int64) (bool, error) {
	return m.liked[postID][userID], nil
}

func newTestService(store *mockStore, likeSvc *mockLikes) *Service {
	return &Service{store: store, likes: likeSvc}
}

func TestFeedPagination(t *testing.T) {
	store := newMockStore()
	store.totalCount = 12
	svc := newTestService(store, newMockLikes())

	page, err := svc.Feed(context.Background(), uuid.Nil, 2)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if page.Page != 2 {
		t.Errorf("Page = %d, want 2", page.Page)
	}
	if !page.HasPrev() || !page.HasNext() {
		t.Errorf("HasPrev() = %v, HasNext() = %v, want both true", page.HasPrev(), page.HasNext())
	}
}

func TestFeedClampsPageBelowOne(t *testing.T) {
	store := newMockStore()
	store.totalCount = 12
	svc := newTestService(store, newMockLikes())

	page, err := svc.Feed(context.Background(), uuid.Nil, -3)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if page.Page != 1 {
		t.Errorf("Page = %d, want 1", page.Page)
	}
}

func TestFeedClampsPagePastEnd(t *testing.T) {
	store := newMockStore()
	store.totalCount = 12
	svc := newTestService(store, newMockLikes())

	page, err := svc.Feed(context.Background(), uuid.Nil, 99)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if page.Page != 3 {
		t.Errorf("Page = %d, want last page 3", page.Page)
	}
	if page.HasNext() {
		t.Error("HasNext() = true on last page, want false")
	}
}

func TestFeedEmpty(t *testing.T) {
	svc := newTestService(newMockStore(), newMockLikes())

	page, err := svc.Feed(context.Background(), uuid.Nil, 1)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	if page.Page != 1 {
		t.Errorf("Page = %d, want 1", page.Page)
	}
	if page.HasNext() || page.HasPrev() {
		t.Error("empty feed should have no prev/next pages")
	}
}

func TestCreatePostAcceptsEmptyContent(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store, newMockLikes())

	post, err := svc.CreatePost(context.Background(), uuid.New(), "")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.Content != "" {
		t.Errorf("Content = %q, want empty", post.Content)
	}
	if len(store.posts) != 1 {
		t.Errorf("stored posts = %d, want 1", len(store.posts))
	}
}

func TestEditContentByOwner(t *testing.T) {
	store := newMockStore()
	owner := uuid.New()
	store.posts[7] = &Post{PostID: 7, UserID: owner, Content: "before"}
	svc := newTestService(store, newMockLikes())

	if err := svc.EditContent(context.Background(), 7, owner, "after"); err != nil {
		t.Fatalf("EditContent() error = %v", err)
	}
	if store.updated[7] != "after" {
		t.Errorf("updated content = %q, want %q", store.updated[7], "after")
	}
}

func TestEditContentByNonOwner(t *testing.T) {
	store := newMockStore()
	store.posts[7] = &Post{PostID: 7, UserID: uuid.New(), Content: "before"}
	svc := newTestService(store, newMockLikes())

	err := svc.EditContent(context.Background(), 7, uuid.New(), "after")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("EditContent() error = %v, want ErrNotOwner", err)
	}
	if _, ok := store.updated[7]; ok {
		t.Error("content was updated despite ownership failure")
	}
}

func TestEditContentMissingPost(t *testing.T) {
	svc := newTestService(newMockStore(), newMockLikes())

	err := svc.EditContent(context.Background(), 404, uuid.New(), "x")
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("EditContent() error = %v, want ErrPostNotFound", err)
	}
}

func TestSetLikedIdempotent(t *testing.T) {
	likeSvc := newMockLikes()
	svc := newTestService(newMockStore(), likeSvc)
	user := uuid.New()

	for i := 0; i < 3; i++ {
		if err := svc.SetLiked(context.Background(), user, 1, true); err != nil {
			t.Fatalf("SetLiked() error = %v", err)
		}
	}

	count, _ := likeSvc.Count(context.Background(), 1)
	if count != 1 {
		t.Errorf("like count = %d after repeated likes, want 1", count)
	}

	if err := svc.SetLiked(context.Background(), user, 1, false); err != nil {
		t.Fatalf("SetLiked(false) error = %v", err)
	}
	count, _ = likeSvc.Count(context.Background(), 1)
	if count != 0 {
		t.Errorf("like count = %d after unlike, want 0", count)
	}
}
