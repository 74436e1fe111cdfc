package routes

import (
	"github.com/gin-gonic/gin"

	"storedash/internal/controllers"
	"storedash/internal/middleware"
)

func AdminRoutes(r *gin.Engine, request *controllers.RequestController) {
	admin := r.Group("/admin")
	{
		// Submission comes from end users; decisions are admin-only.
		admin.POST("/request", middleware.RequireAuth(), request.AddRequest)
		admin.GET("/request", middleware.RequireAuthWithRole("admin"), request.ListRequests)
		admin.GET("/request/user", middleware.RequireAuth(), request.GetUserRequests)
		admin.PUT("/request/:id", middleware.RequireAuthWithRole("admin"), request.UpdateRequest)
	}
}
