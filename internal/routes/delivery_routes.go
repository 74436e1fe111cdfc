package routes

import (
	"github.com/gin-gonic/gin"

	"storedash/internal/controllers"
	"storedash/internal/middleware"
)

func DeliveryRoutes(r *gin.Engine, order *controllers.OrderController, trip *controllers.TripController) {
	delivery := r.Group("/delivery")
	delivery.Use(middleware.RequireAuth())
	{
		delivery.POST("/order", order.CreateOrder)
		delivery.GET("/order", order.GetOrders)
		delivery.GET("/order/search", order.SearchOrders)
		delivery.PUT("/order/:id", order.UpdateOrder)
		delivery.DELETE("/order/:id", order.DeleteOrder)

		delivery.POST("/trip", trip.CreateTrip)
		delivery.GET("/trip", trip.GetTrips)
		delivery.GET("/trip/search", trip.SearchTrips)
		delivery.PUT("/trip/:id", trip.UpdateTrip)
		delivery.DELETE("/trip/:id", trip.DeleteTrip)
	}
}
