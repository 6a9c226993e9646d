package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the unauthenticated auth endpoints
func RegisterPublicRoutes(rg *gin.RouterGroup, handler *Handler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
	}
}

// RegisterProtectedRoutes registers auth endpoints that require a valid token
func RegisterProtectedRoutes(rg *gin.RouterGroup, handler *Handler) {
	authGroup := rg.Group("/auth")
	{
		authGroup.GET("/me", handler.Me)
		authGroup.PUT("/profile", handler.UpdateProfile)
	}
}
