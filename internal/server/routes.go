package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.SetHTMLTemplate(loadTemplates())

	r.Use(SessionMiddleware(s.sessions))

	r.GET("/", s.postHandler.Feed)
	r.GET("/following", s.postHandler.Following)

	r.GET("/login", s.authHandler.ShowLogin)
	r.POST("/login", s.authHandler.Login)
	r.GET("/logout", s.authHandler.Logout)
	r.GET("/register", s.authHandler.ShowRegister)
	r.POST("/register", s.authHandler.Register)

	r.POST("/posts", s.postHandler.Create)
	// The edit and comment endpoints answer every method themselves so
	// a wrong method gets the endpoint's own 400 instead of a gin 404.
	r.Any("/posts/:id", s.postHandler.Edit)
	r.Any("/posts/:id/comments", s.commentHandler.Handle)

	r.GET("/profile/:username", s.userHandler.Profile)
	r.POST("/follow", s.followHandler.Toggle)

	r.GET("/health", s.healthHandler)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]interface{})

	response["database"] = s.db.Health()

	// Probing a key that does not exist still exercises the Redis round
	// trip; only a transport error means the store is down.
	sessions := map[string]string{"status": "up"}
	if _, err := s.sessionStore.Exists(c.Request.Context(), "session:health-probe"); err != nil {
		sessions["status"] = "down"
		sessions["error"] = err.Error()
	}
	response["sessions"] = sessions

	c.JSON(http.StatusOK, response)
}
