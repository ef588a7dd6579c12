package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafesys/cafe-backend/controllers"
	"github.com/cafesys/cafe-backend/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Credential endpoints, throttled per IP.
	loginLimiter := middlewares.NewLoginRateLimiter(1, 5)
	public := r.Group("/")
	public.Use(loginLimiter.Handler())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing needs no identity.
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:item_name", menuCtrl.GetMenuItem)

	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/profile", userCtrl.GetProfile)
		authed.PATCH("/profile", userCtrl.UpdateProfile)

		authed.POST("/orders", orderCtrl.CreateOrder)
		authed.GET("/orders", orderCtrl.History)
		authed.GET("/orders/:order_id", orderCtrl.GetOrder)
		authed.GET("/orders/:order_id/ready", orderCtrl.IsReady)
		authed.DELETE("/orders/:order_id", orderCtrl.CancelOrder)
		authed.POST("/orders/:order_id/items", orderCtrl.AddItem)
		authed.DELETE("/orders/:order_id/items/:item_name", orderCtrl.RemoveItem)
		authed.PATCH("/orders/:order_id/items/:item_name/comment", orderCtrl.SetComment)

		staff := authed.Group("/")
		staff.Use(middlewares.StaffOnly())
		{
			staff.PATCH("/orders/:order_id/paid", orderCtrl.SetPaid)
			staff.PATCH("/orders/:order_id/items/:item_name/status", orderCtrl.SetItemStatus)
			staff.GET("/kitchen/orders", orderCtrl.DayHistory)
		}

		manager := authed.Group("/")
		manager.Use(middlewares.ManagerOnly())
		{
			manager.POST("/menus", menuCtrl.CreateMenuItem)
			manager.PATCH("/menus/:item_name", menuCtrl.UpdateMenuItem)
			manager.DELETE("/menus/:item_name", menuCtrl.DeleteMenuItem)

			manager.GET("/users", userCtrl.ListUsers)
			manager.PATCH("/users/:login/role", userCtrl.SetRole)
		}
	}

	return r
}
