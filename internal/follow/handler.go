package follow

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UsernameLookup resolves a user ID to a username for the post-toggle
// redirect. Satisfied by users.Store.
type UsernameLookup interface {
	UsernameByID(ctx context.Context, id uuid.UUID) (string, error)
}

// Handler handles the follow-toggle form post.
type Handler struct {
	svc   Service
	names UsernameLookup
}

func NewHandler(svc Service, names UsernameLookup) *Handler {
	return &Handler{svc: svc, names: names}
}

// Toggle handles POST /follow. The form carries the target user ID in the
// "user" field; the stored relationship decides follow vs unfollow. A legacy
// "following" field is still sent by older pages and is ignored. Invalid
// input is silently redirected to the feed.
func (h *Handler) Toggle(c *gin.Context) {
	viewerID, ok := viewerID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	targetID, err := uuid.Parse(c.PostForm("user"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	nowFollowing, err := h.svc.Toggle(c.Request.Context(), viewerID, targetID)
	if err != nil {
		if !errors.Is(err, ErrSelfFollow) {
			slog.Error("Follow toggle failed",
				"follower_id", viewerID,
				"followee_id", targetID,
				"error", err.Error(),
			)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	slog.Debug("Follow toggled",
		"follower_id", viewerID,
		"followee_id", targetID,
		"following", nowFollowing,
	)

	username, err := h.names.UsernameByID(c.Request.Context(), targetID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+username)
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
