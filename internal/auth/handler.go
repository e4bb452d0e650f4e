package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"network/internal/config"
	"network/internal/session"
	"network/internal/users"
)

const sessionCookie = "session_id"

// Handler handles login, logout and registration.
type Handler struct {
	svc      Service
	sessions session.Manager
	maxAge   int
}

func NewHandler(svc Service, sessions session.Manager) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		maxAge:   config.GetEnvInt("SESSION_MAX_AGE", 3600),
	}
}

// ShowLogin handles GET /login.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login handles POST /login. A failed attempt re-renders the form with a
// message that does not distinguish a bad username from a bad password.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.svc.Login(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			slog.Error("Login failed", "username", username, "error", err.Error())
		}
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Title":   "Login",
			"Message": "Invalid username and/or password.",
		})
		return
	}

	h.startSession(c, user)
}

// Logout handles GET /logout. Safe to call without a session.
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(sessionCookie); err == nil {
		if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			slog.Warn("Failed to delete session", "error", err.Error())
		}
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowRegister handles GET /register.
func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirmation := c.PostForm("confirmation")

	if password != confirmation {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Title":   "Register",
			"Message": "Passwords must match.",
		})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), username, email, password)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) || errors.Is(err, users.ErrEmailTaken) {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"Title":   "Register",
				"Message": "Username already taken.",
			})
			return
		}
		slog.Error("Registration failed", "username", username, "error", err.Error())
		c.String(http.StatusInternalServerError, "registration failed")
		return
	}

	h.startSession(c, user)
}

// startSession creates a session for user, sets the cookie and sends the
// browser home.
func (h *Handler) startSession(c *gin.Context, user *users.User) {
	sessionID, err := h.sessions.Create(c.Request.Context(), user.ID.String(), user.Username, h.maxAge)
	if err != nil {
		slog.Error("Failed to create session", "user_id", user.ID, "error", err.Error())
		c.String(http.StatusInternalServerError, "failed to create session")
		return
	}

	c.SetCookie(sessionCookie, sessionID, h.maxAge, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
