package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"storedash/internal/controllers"
)

// Controllers bundles everything the router mounts. Constructed in
// main so all handles are explicit.
type Controllers struct {
	Auth    *controllers.AuthController
	Request *controllers.RequestController
	Order   *controllers.OrderController
	Trip    *controllers.TripController
	Utility *controllers.UtilityController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, ctrl.Auth)
	AdminRoutes(r, ctrl.Request)
	DeliveryRoutes(r, ctrl.Order, ctrl.Trip)
	UtilityRoutes(r, ctrl.Utility)

	return r
}
