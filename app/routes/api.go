// Package routes declares the HTTP surface: the middleware stack, the
// role policy table, and every endpoint.
package routes

import (
	"net/http"
	"time"

	"github.com/priyadarshi/darzi/app/controllers"
	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/app/services"
	"github.com/priyadarshi/darzi/pkg/metrics"
	"github.com/priyadarshi/darzi/pkg/middleware"
	"github.com/priyadarshi/darzi/pkg/rbac"
	"github.com/priyadarshi/darzi/pkg/reqid"
	"github.com/priyadarshi/darzi/pkg/router"
	"github.com/priyadarshi/darzi/pkg/ws"
	"gorm.io/gorm"
)

// policy is the single source of truth for who may do what. Route groups
// attach rbac.Policy.Require keys; handlers never check roles themselves.
var policy = rbac.Policy{
	"orders.view":         {models.RoleAdmin, models.RoleCustomer},
	"orders.manage":       {models.RoleAdmin},
	"customers.view":      {models.RoleAdmin, models.RoleCustomer},
	"customers.manage":    {models.RoleAdmin},
	"measurements.manage": {models.RoleAdmin},
}

// Register builds every service and controller and mounts the API.
func Register(r *router.Router, db *gorm.DB, hub *ws.Hub) {
	authSvc := services.NewAuthService(db)
	orderSvc := services.NewOrderService(db)
	customerSvc := services.NewCustomerService(db)
	measurementSvc := services.NewMeasurementService(db)

	authCtl := controllers.NewAuthController(authSvc)
	orderCtl := controllers.NewOrderController(orderSvc)
	customerCtl := controllers.NewCustomerController(customerSvc, orderSvc, measurementSvc)
	measurementCtl := controllers.NewMeasurementController(measurementSvc)

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", authCtl.Register)
	api.Post("/auth/login", "auth.login", authCtl.Login)
	api.Get("/auth/validate", "auth.validate", authCtl.Validate, middleware.Auth)

	protected := api.Group("", middleware.Auth)

	orders := protected.Group("/orders", policy.Require("orders.view"))
	orders.Get("", "orders.index", orderCtl.List)
	orders.Get("/pending", "orders.pending", orderCtl.Pending)
	orders.Get("/{id}", "orders.show", orderCtl.Get)
	orders.Get("/{id}/progress", "orders.progress", orderCtl.Progress)
	orders.Post("", "orders.store", orderCtl.Create, policy.Require("orders.manage"))
	orders.Put("/{id}", "orders.update", orderCtl.Update, policy.Require("orders.manage"))
	orders.Put("/{id}/status", "orders.status", orderCtl.UpdateStatus, policy.Require("orders.manage"))
	orders.Delete("/{id}", "orders.destroy", orderCtl.Delete, policy.Require("orders.manage"))

	customers := protected.Group("/customers", policy.Require("customers.view"))
	customers.Get("/{id}", "customers.show", customerCtl.Get)
	customers.Get("/{id}/orders", "customers.orders", customerCtl.Orders)
	customers.Get("/{id}/measurements", "customers.measurements", customerCtl.Measurements)
	customers.Get("", "customers.index", customerCtl.List, policy.Require("customers.manage"))
	customers.Post("", "customers.store", customerCtl.Create, policy.Require("customers.manage"))
	customers.Put("/{id}", "customers.update", customerCtl.Update, policy.Require("customers.manage"))
	customers.Delete("/{id}", "customers.destroy", customerCtl.Delete, policy.Require("customers.manage"))

	measurements := protected.Group("/measurements", policy.Require("measurements.manage"))
	measurements.Get("/{id}", "measurements.show", measurementCtl.Get)
	measurements.Post("", "measurements.store", measurementCtl.Create)
	measurements.Put("/{id}", "measurements.update", measurementCtl.Update)
	measurements.Delete("/{id}", "measurements.destroy", measurementCtl.Delete)

	r.HandleFunc("/ws/orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	})
	r.HandleFunc("/metrics", metrics.Handler())
}
