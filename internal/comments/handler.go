package comments

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"network/internal/posts"
)

// PostGetter resolves the post a comment thread hangs off.
type PostGetter interface {
	GetPost(ctx context.Context, postID int64) (*posts.Post, error)
}

// Handler handles the comment thread endpoint.
type Handler struct {
	svc   Service
	posts PostGetter
}

func NewHandler(svc Service, postGetter PostGetter) *Handler {
	return &Handler{svc: svc, posts: postGetter}
}

type createCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// Handle serves every method on /posts/:id/comments: GET lists the thread,
// POST adds a comment, anything else answers 400.
func (h *Handler) Handle(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
		return
	}

	if _, err := h.posts.GetPost(c.Request.Context(), postID); err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
			return
		}
		slog.Error("Failed to load post", "post_id", postID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	switch c.Request.Method {
	case http.MethodGet:
		h.list(c, postID)
	case http.MethodPost:
		h.create(c, postID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "GET or POST request required."})
	}
}

func (h *Handler) list(c *gin.Context, postID int64) {
	comments, err := h.svc.ListByPost(c.Request.Context(), postID)
	if err != nil {
		slog.Error("Failed to list comments", "post_id", postID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, toJSON(comments))
}

func (h *Handler) create(c *gin.Context, postID int64) {
	viewer, authenticated := viewerID(c)
	if !authenticated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login to make comments"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment field required"})
		return
	}

	if err := h.svc.Create(c.Request.Context(), postID, viewer, req.Comment); err != nil {
		slog.Error("Failed to create comment", "post_id", postID, "user_id", viewer, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.Status(http.StatusNoContent)
}

func viewerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
