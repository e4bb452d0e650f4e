package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"network/internal/follow"
	"network/internal/posts"
)

// PostLister supplies a user's posts for the profile page, oldest-first.
type PostLister interface {
	ProfilePosts(ctx context.Context, viewerID, authorID uuid.UUID) ([]posts.Post, error)
}

// Handler renders user profile pages.
type Handler struct {
	store   Store
	follows follow.Service
	posts   PostLister
}

func NewHandler(store Store, follows follow.Service, postSvc PostLister) *Handler {
	return &Handler{store: store, follows: follows, posts: postSvc}
}

// Profile handles GET /profile/:username. Public; the follow button state
// and the per-post like flags depend on who is viewing.
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	user, err := h.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{
				"Title": "User not found",
			})
			return
		}
		slog.Error("Failed to load user", "username", username, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to load profile")
		return
	}

	viewer, authenticated := viewerID(c)

	followers, err := h.follows.FollowersCount(ctx, user.ID)
	if err != nil {
		slog.Error("Failed to count followers", "user_id", user.ID, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to load profile")
		return
	}

	followingCount, err := h.follows.FollowingCount(ctx, user.ID)
	if err != nil {
		slog.Error("Failed to count followed users", "user_id", user.ID, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to load profile")
		return
	}

	following := false
	if authenticated && viewer != user.ID {
		following, err = h.follows.IsFollowing(ctx, viewer, user.ID)
		if err != nil {
			slog.Error("Failed to check follow state", "user_id", user.ID, "error", err.Error())
			c.String(http.StatusInternalServerError, "failed to load profile")
			return
		}
	}

	userPosts, err := h.posts.ProfilePosts(ctx, viewer, user.ID)
	if err != nil {
		slog.Error("Failed to load profile posts", "user_id", user.ID, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Title": user.Username,
		"Profile": Profile{
			User:           user,
			Followers:      followers,
			FollowingCount: followingCount,
			Following:      following,
			IsSelf:         authenticated && viewer == user.ID,
		},
		"Posts":         userPosts,
		"Authenticated": authenticated,
		"Username":      c.GetString("username"),
	})
}

func viewerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
