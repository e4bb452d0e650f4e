package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the data rendered on a user's profile page. Following is the
// viewer's relationship to the user; FollowingCount is how many users the
// profiled user follows.
type Profile struct {
	User           *User `json:"user"`
	Followers      int64 `json:"followers"`
	FollowingCount int64 `json:"following_count"`
	Following      bool  `json:"following"`
	IsSelf         bool  `json:"is_self"`
}
