package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onokeee/mindmap"
	"github.com/onokeee/mindmap/auth"
)

func New(
	maps mindmap.MindmapStore,
	authService *auth.Service,
) (http.Handler, error) {
	router := gin.Default()

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	authenticator := &Authenticator{Service: authService}

	// Auth
	authHandler := AuthHandler{Service: authService}
	authHandler.RegisterRoutes(router)

	// Mindmaps
	mindmapHandler := MindmapHandler{Store: maps, Authenticator: authenticator}
	mindmapHandler.RegisterRoutes(router)

	return router, nil
}
