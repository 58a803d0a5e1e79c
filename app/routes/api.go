// Package routes assembles the API: repositories over the injected database
// handle, services over the repositories, controllers over the services, and
// the route table binding them to paths.
package routes

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/rbac"
	"github.com/shashiranjanraj/bazaar/pkg/router"
	"gorm.io/gorm"
)

// RegisterAPI mounts every endpoint on r, wired to the given database handle.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, addressRepo)
	addressService := services.NewAddressService(db, addressRepo, userRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(db, cartRepo, productRepo)
	orderService := services.NewOrderService(db, orderRepo, cartRepo, userRepo, addressRepo)

	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService, addressService)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService)

	// Each request re-reads the caller from the database, so deleted users
	// and role changes take effect immediately.
	authed := middleware.Auth(func(ctx context.Context, userID uint) (middleware.Identity, error) {
		user, err := userRepo.FindByID(userID)
		if err != nil {
			return middleware.Identity{}, errors.New("user no longer exists")
		}
		return middleware.Identity{UserID: user.ID, Role: user.Role}, nil
	})
	adminOnly := rbac.HasRole(models.RoleAdmin)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", "auth.signup", authController.Signup)
	auth.Post("/login", "auth.login", authController.Login)
	auth.Get("/me", "auth.me", authController.Me, authed)

	users := api.Group("/users", authed)
	users.Put("/", "users.update", userController.UpdateProfile)
	users.Post("/address", "users.address.add", userController.AddAddress)
	users.Get("/address", "users.address.list", userController.ListAddresses)
	users.Delete("/address/{id}", "users.address.delete", userController.DeleteAddress)
	users.Get("/", "users.list", userController.List, adminOnly)
	users.Get("/{id}", "users.get", userController.Get, adminOnly)
	users.Put("/{id}/role", "users.role", userController.ChangeRole, adminOnly)

	products := api.Group("/products")
	products.Get("/", "products.list", productController.List)
	products.Get("/search", "products.search", productController.Search)
	products.Get("/{id}", "products.get", productController.Get)
	products.Post("/", "products.create", productController.Create, authed, adminOnly)
	products.Put("/{id}", "products.update", productController.Update, authed, adminOnly)
	products.Delete("/{id}", "products.delete", productController.Delete, authed, adminOnly)

	carts := api.Group("/carts", authed)
	carts.Post("/", "carts.add", cartController.Add)
	carts.Get("/", "carts.get", cartController.Get)
	carts.Put("/{id}", "carts.update", cartController.SetQuantity)
	carts.Delete("/{id}", "carts.remove", cartController.Remove)

	orders := api.Group("/orders", authed)
	orders.Post("/", "orders.create", orderController.Create)
	orders.Get("/", "orders.list", orderController.List)
	orders.Get("/admin/all", "orders.admin.list", orderController.ListAll, adminOnly)
	orders.Get("/admin/{id}", "orders.admin.get", orderController.GetAny, adminOnly)
	orders.Put("/{id}/status", "orders.status", orderController.SetStatus, adminOnly)
	orders.Get("/{id}", "orders.get", orderController.Get)
	orders.Put("/{id}/cancel", "orders.cancel", orderController.Cancel)
}
