package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lkzdsb-lab/postsvc/internal/handler"
	"github.com/lkzdsb-lab/postsvc/internal/middleware"
)

func InitRouter(post *handler.PostHandler, db handler.Pinger, logger zerolog.Logger) *gin.Engine {
	handler.UseJSONFieldNames()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		gin.CustomRecovery(middleware.HandlePanics(logger)),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": http.StatusText(http.StatusNotFound)})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": http.StatusText(http.StatusMethodNotAllowed)})
	})

	r.GET("/health", handler.Health(db))

	// posts
	postGroup := r.Group("/posts")
	{
		postGroup.GET("", post.ListPosts)
		postGroup.POST("", post.CreatePost)
		postGroup.GET("/:id", post.GetPost)
		postGroup.PATCH("/:id", post.PatchPost)
		postGroup.DELETE("/:id", post.DeletePost)
	}

	return r
}
