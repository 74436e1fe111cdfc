package routes

import (
	"github.com/gin-gonic/gin"

	"storedash/internal/controllers"
	"storedash/internal/middleware"
)

func UtilityRoutes(r *gin.Engine, utility *controllers.UtilityController) {
	util := r.Group("/utility")
	util.Use(middleware.RequireAuth())
	{
		util.POST("/bank", utility.CreateBank)
		util.GET("/bank", utility.ListBanks)
		util.DELETE("/bank/:id", utility.DeleteBank)

		util.POST("/vehicle", utility.CreateVehicle)
		util.GET("/vehicle", utility.ListVehicles)
		util.PUT("/vehicle/:id", utility.UpdateVehicle)
		util.DELETE("/vehicle/:id", utility.DeleteVehicle)
	}

	inventory := r.Group("/inventory")
	inventory.Use(middleware.RequireAuth())
	{
		inventory.POST("", utility.CreateInventory)
		inventory.GET("", utility.ListInventory)
		inventory.GET("/search", utility.SearchInventory)
		inventory.PUT("/:id", utility.UpdateInventory)
		inventory.DELETE("/:id", utility.DeleteInventory)
	}
}
