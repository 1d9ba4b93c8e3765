package routes

import (
	"savora/auth"
	"savora/cart"
	"savora/catalog"
	"savora/chat"
	"savora/employees"
	"savora/favorites"
	"savora/foodtypes"
	"savora/middleware"
	"savora/orders"
	"savora/ratelim"
	"savora/users"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/v1/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/v1/auth/logout", auth.Logout)
	router.GET("/api/v1/auth/refresh", auth.RefreshToken)
	router.POST("/api/v1/auth/forgot-password", ratelim.RateLimit(auth.ForgotPassword))
	router.POST("/api/v1/auth/check-otp", ratelim.RateLimit(auth.CheckOTP))
	router.PUT("/api/v1/auth/change-password", middleware.Authenticate(auth.ChangePassword))
	router.PUT("/api/v1/auth/reset-password", ratelim.RateLimit(auth.ResetPassword))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/v1/cart", middleware.Authenticate(cart.GetUserCart))
	router.GET("/api/v1/cart/store/:storeId", middleware.Authenticate(cart.GetUserCartInStore))
	router.GET("/api/v1/cart/detail/:cartId", middleware.Authenticate(cart.GetCartDetail))

	router.POST("/api/v1/cart/increase", middleware.Authenticate(cart.IncreaseQuantity))
	router.POST("/api/v1/cart/decrease", middleware.Authenticate(cart.DecreaseQuantity))
	router.POST("/api/v1/cart/update", middleware.Authenticate(cart.UpdateCart))
	router.POST("/api/v1/cart/clear", middleware.Authenticate(cart.ClearCart))
	router.POST("/api/v1/cart/clear/dish/:dish_id", middleware.Authenticate(cart.ClearDish))
	router.POST("/api/v1/cart/clear/store/:storeId", middleware.Authenticate(cart.ClearStoreCart))
	router.POST("/api/v1/cart/complete", middleware.Authenticate(cart.CompleteCart))
}

func AddStoreRoutes(router *httprouter.Router) {
	router.GET("/api/v1/store", catalog.GetAllStore)
	router.GET("/api/v1/store/:store_id", catalog.GetStoreInformation)
	router.GET("/api/v1/store/:store_id/dish", catalog.GetAllDish)
	router.GET("/api/v1/store/:store_id/topping", catalog.GetAllToppingGroups)
	router.GET("/api/v1/store/:store_id/category", catalog.GetAllCategory)
	router.GET("/api/v1/store/:store_id/staff", catalog.GetAllStaff)
	router.GET("/api/v1/store/:store_id/order", middleware.Authenticate(middleware.RequireRole("admin", "employee", "manager")(orders.GetAllOrder)))
	router.GET("/api/v1/store/:store_id/rating/avg", catalog.GetStoreRating)
	router.POST("/api/v1/store/:store_id/rating", middleware.Authenticate(catalog.RateStore))
	router.POST("/api/v1/store/:store_id/topping/create", middleware.Authenticate(middleware.RequireRole("admin", "employee", "manager")(catalog.CreateToppingGroup)))
}

func AddDishRoutes(router *httprouter.Router) {
	router.GET("/api/v1/dish/:dish_id", catalog.GetDish)
	router.GET("/api/v1/dish/:dish_id/rating/avg", catalog.GetDishRating)
	router.GET("/api/v1/dish/:dish_id/rating", catalog.GetDishRatings)
	router.GET("/api/v1/dish/:dish_id/topping", catalog.GetToppingsForDish)
	router.POST("/api/v1/dish/:dish_id/topping", middleware.Authenticate(middleware.RequireRole("admin", "employee", "manager")(catalog.AddToppingsToDish)))
	router.POST("/api/v1/dish/:dish_id/rating", middleware.Authenticate(catalog.RateDish))
}

func AddToppingGroupRoutes(router *httprouter.Router) {
	staffOnly := middleware.RequireRole("admin", "employee", "manager")
	router.GET("/api/v1/topping-group/:group_id", catalog.GetToppingGroup)
	router.POST("/api/v1/topping-group/:group_id/topping", middleware.Authenticate(staffOnly(catalog.AddToppingToGroup)))
	router.DELETE("/api/v1/topping-group/:group_id/topping/:topping_id", middleware.Authenticate(staffOnly(catalog.RemoveToppingFromGroup)))
	router.DELETE("/api/v1/topping-group/:group_id", middleware.Authenticate(staffOnly(catalog.DeleteToppingGroup)))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.GET("/api/v1/category", catalog.GetAllCategory)
	router.GET("/api/v1/category/:category_id", catalog.GetCategory)
}

func AddStaffRoutes(router *httprouter.Router) {
	router.GET("/api/v1/staff/:staff_id", catalog.GetStaff)
}

func AddOrderRoutes(router *httprouter.Router) {
	staffOnly := middleware.RequireRole("admin", "employee", "manager")
	router.GET("/api/v1/orders", middleware.Authenticate(staffOnly(orders.GetAllOrder)))
	router.GET("/api/v1/orders/my", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/v1/order/:order_id", middleware.Authenticate(orders.GetOrder))
	router.PUT("/api/v1/order/:order_id/status", middleware.Authenticate(staffOnly(orders.UpdateOrderStatus)))
	router.GET("/api/v1/order/:order_id/qr", middleware.Authenticate(orders.GetPickupQR))
	router.GET("/api/v1/order/:order_id/receipt", middleware.Authenticate(orders.GetReceipt))
	router.POST("/api/v1/order/scan", middleware.Authenticate(staffOnly(orders.ScanPickup)))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/v1/user", users.GetAllUsers)
	router.GET("/api/v1/user/:id", users.GetUser)
	router.PUT("/api/v1/user", middleware.Authenticate(users.UpdateUser))
	router.DELETE("/api/v1/user", middleware.Authenticate(users.DeleteUser))
}

func AddEmployeeRoutes(router *httprouter.Router) {
	adminOnly := middleware.RequireRole("admin", "employee")
	router.POST("/api/v1/employee/login", ratelim.RateLimit(auth.LoginEmployee))
	router.GET("/api/v1/employee", middleware.Authenticate(adminOnly(employees.GetAllEmployees)))
	router.GET("/api/v1/employee/:id", employees.GetEmployee)
	router.POST("/api/v1/employee", middleware.Authenticate(adminOnly(employees.AddEmployee)))
	router.PUT("/api/v1/employee", middleware.Authenticate(employees.UpdateEmployee))
	router.DELETE("/api/v1/employee/:id", middleware.Authenticate(adminOnly(employees.DeleteEmployee)))
	router.PUT("/api/v1/employee/:id/roles", middleware.Authenticate(adminOnly(employees.ChangeRoles)))
	router.PATCH("/api/v1/employee/:id/block", middleware.Authenticate(adminOnly(employees.BlockEmployee)))
}

func AddFoodTypeRoutes(router *httprouter.Router) {
	staffOnly := middleware.RequireRole("admin", "employee", "manager")
	router.GET("/api/v1/foodType", foodtypes.GetAllFoodTypes)
	router.GET("/api/v1/foodType/:id", foodtypes.GetFoodType)
	router.POST("/api/v1/foodType", middleware.Authenticate(staffOnly(foodtypes.CreateFoodType)))
	router.PUT("/api/v1/foodType", middleware.Authenticate(staffOnly(foodtypes.UpdateFoodType)))
	router.DELETE("/api/v1/foodType", middleware.Authenticate(staffOnly(foodtypes.DeleteFoodType)))
}

func AddFavoriteRoutes(router *httprouter.Router) {
	router.GET("/api/v1/favorite", middleware.Authenticate(favorites.GetUserFavorites))
	router.POST("/api/v1/favorite/add", middleware.Authenticate(favorites.AddFavorite))
	router.POST("/api/v1/favorite/remove", middleware.Authenticate(favorites.RemoveFavorite))
}

func AddChatRoutes(router *httprouter.Router, hub *chat.Hub) {
	router.POST("/api/v1/chat", middleware.Authenticate(chat.InitChat))
	router.GET("/api/v1/chat", middleware.Authenticate(chat.GetUserChats))
	router.GET("/api/v1/chat/:chat_id/messages", middleware.Authenticate(chat.GetChatMessages))
	router.POST("/api/v1/chat/:chat_id/messages", middleware.Authenticate(chat.SendMessage))
	router.DELETE("/api/v1/message/delete/:id", middleware.Authenticate(chat.DeleteMessage))

	router.GET("/ws/chat/:chat_id", chat.WebSocketHandler(hub))
}
