package posts

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func setupRouter(h *Handler, viewer uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("index.html").Parse("{{ .Title }}")))
	if viewer != uuid.Nil {
		r.Use(func(c *gin.Context) {
			c.Set("user_id", viewer)
			c.Set("username", "tester")
		})
	}
	r.GET("/", h.Feed)
	r.GET("/following", h.Following)
	r.POST("/posts", h.Create)
	r.Any("/posts/:id", h.Edit)
	return r
}

func TestFeedHandlerAnonymous(t *testing.T) {
	store := newMockStore()
	store.totalCount = 3
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, uuid.Nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestFeedHandlerBadPageParam(t *testing.T) {
	store := newMockStore()
	store.totalCount = 3
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, uuid.Nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?page=banana", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if store.listPage != 1 {
		t.Errorf("page passed to store = %d, want 1", store.listPage)
	}
}

func TestFollowingHandlerRequiresLogin(t *testing.T) {
	h := NewHandler(newTestService(newMockStore(), newMockLikes()))
	r := setupRouter(h, uuid.Nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/following", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestCreateHandlerRedirectsHome(t *testing.T) {
	store := newMockStore()
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader("content=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if len(store.posts) != 1 {
		t.Fatalf("stored posts = %d, want 1", len(store.posts))
	}
	if store.posts[1].Content != "hello" {
		t.Errorf("content = %q, want %q", store.posts[1].Content, "hello")
	}
}

func TestEditHandlerRequiresLogin(t *testing.T) {
	h := NewHandler(newTestService(newMockStore(), newMockLikes()))
	r := setupRouter(h, uuid.Nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{"content": "x"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "Login required.") {
		t.Errorf("body = %q, want login error", w.Body.String())
	}
}

func TestEditHandlerUnknownPost(t *testing.T) {
	h := NewHandler(newTestService(newMockStore(), newMockLikes()))
	r := setupRouter(h, uuid.New())

	for _, path := range []string{"/posts/99", "/posts/abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{"content": "x"}`))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("PUT %s status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
		if !strings.Contains(w.Body.String(), "Post not found.") {
			t.Errorf("PUT %s body = %q, want not-found error", path, w.Body.String())
		}
	}
}

func TestEditHandlerRejectsNonPut(t *testing.T) {
	store := newMockStore()
	viewer := uuid.New()
	store.posts[1] = &Post{PostID: 1, UserID: viewer}
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, viewer)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/posts/1", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want %d", method, w.Code, http.StatusBadRequest)
		}
		if !strings.Contains(w.Body.String(), "PUT request required.") {
			t.Errorf("%s body = %q, want method error", method, w.Body.String())
		}
	}
}

func TestEditHandlerContentPatch(t *testing.T) {
	store := newMockStore()
	viewer := uuid.New()
	store.posts[1] = &Post{PostID: 1, UserID: viewer, Content: "old"}
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, viewer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{"content": "new"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if store.updated[1] != "new" {
		t.Errorf("updated content = %q, want %q", store.updated[1], "new")
	}
}

func TestEditHandlerContentPatchNotOwner(t *testing.T) {
	store := newMockStore()
	store.posts[1] = &Post{PostID: 1, UserID: uuid.New(), Content: "old"}
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{"content": "new"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !strings.Contains(w.Body.String(), "Cant edit someone else's post!") {
		t.Errorf("body = %q, want ownership error", w.Body.String())
	}
}

func TestEditHandlerLikesPatch(t *testing.T) {
	store := newMockStore()
	viewer := uuid.New()
	store.posts[1] = &Post{PostID: 1, UserID: uuid.New()}
	likeSvc := newMockLikes()
	h := NewHandler(newTestService(store, likeSvc))
	r := setupRouter(h, viewer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{"likes": true}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if liked, _ := likeSvc.IsLiked(context.Background(), viewer, 1); !liked {
		t.Error("post was not liked")
	}
}

func TestEditHandlerEmptyPatch(t *testing.T) {
	store := newMockStore()
	viewer := uuid.New()
	store.posts[1] = &Post{PostID: 1, UserID: viewer}
	h := NewHandler(newTestService(store, newMockLikes()))
	r := setupRouter(h, viewer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/posts/1", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
