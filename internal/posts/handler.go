package posts

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles feed pages and post mutations.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Feed handles GET /. Public; anonymous viewers see the same posts with
// no like state of their own.
func (h *Handler) Feed(c *gin.Context) {
	viewer, authenticated := viewerID(c)
	page := pageParam(c)

	feed, err := h.svc.Feed(c.Request.Context(), viewer, page)
	if err != nil {
		slog.Error("Failed to load feed", "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to load feed")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":         "All Posts",
		"Feed":          feed,
		"CanPost":       true,
		"Authenticated": authenticated,
		"Username":      c.GetString("username"),
	})
}

// Following handles GET /following: posts by users the viewer follows.
func (h *Handler) Following(c *gin.Context) {
	viewer, authenticated := viewerID(c)
	if !authenticated {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	feed, err := h.svc.FollowingFeed(c.Request.Context(), viewer, pageParam(c))
	if err != nil {
		slog.Error("Failed to load following feed", "viewer_id", viewer, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to load feed")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":         "Following",
		"Feed":          feed,
		"CanPost":       false,
		"Authenticated": true,
		"Username":      c.GetString("username"),
	})
}

// Create handles POST /posts. Content passes through unvalidated; an empty
// post is stored as-is.
func (h *Handler) Create(c *gin.Context) {
	viewer, authenticated := viewerID(c)
	if !authenticated {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if _, err := h.svc.CreatePost(c.Request.Context(), viewer, c.PostForm("content")); err != nil {
		slog.Error("Failed to create post", "user_id", viewer, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to create post")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Edit handles every method on /posts/:id so the error contract matches
// the original page scripts: existence is checked before the method, and
// a non-PUT answers 400 rather than 405.
func (h *Handler) Edit(c *gin.Context) {
	viewer, authenticated := viewerID(c)
	if !authenticated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login required."})
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
		return
	}

	if _, err := h.svc.GetPost(c.Request.Context(), postID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
			return
		}
		slog.Error("Failed to load post", "post_id", postID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	if c.Request.Method != http.MethodPut {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PUT request required."})
		return
	}

	var req EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	switch {
	case req.Content != nil:
		err := h.svc.EditContent(c.Request.Context(), postID, viewer, *req.Content)
		if errors.Is(err, ErrNotOwner) {
			// Deliberately 404, not 403: an ownership failure must not
			// confirm the post exists.
			c.JSON(http.StatusNotFound, gin.H{"error": "Cant edit someone else's post!"})
			return
		}
		if err != nil {
			slog.Error("Failed to edit post", "post_id", postID, "user_id", viewer, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to edit post"})
			return
		}
	case req.Likes != nil:
		if err := h.svc.SetLiked(c.Request.Context(), viewer, postID, *req.Likes); err != nil {
			slog.Error("Failed to set like", "post_id", postID, "user_id", viewer, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set like"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "content or likes field required"})
		return
	}

	c.Status(http.StatusNoContent)
}

// pageParam reads ?page=, defaulting anything unparseable to page 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// viewerID extracts the authenticated user ID set by the session middleware.
func viewerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
