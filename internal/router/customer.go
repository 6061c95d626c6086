package router

import (
	"net/http"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/handler"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/middleware"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/model"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerCustomerRoutes mounts public registration and the admin customer routes.
func registerCustomerRoutes(api *echo.Group, s *server.Server, h *handler.Handlers, m *middleware.Middlewares) {
	ch := h.Customer

	limit, window := 0, time.Duration(0)
	if reg := s.Config.Registration; reg != nil {
		limit, window = reg.RateLimit, reg.RateWindow
	}

	api.POST("/register/customer",
		handler.Handle(ch.Handler, ch.Register, http.StatusOK, &model.RegisterCustomerRequest{}),
		m.RateLimit.Limit("register_customer", limit, window),
	)

	customers := api.Group("/customers", m.Auth.RequireAuth)
	customers.GET("", handler.Handle(ch.Handler, ch.List, http.StatusOK, &model.ListCustomersRequest{}))
	customers.GET("/export", handler.HandleFile(ch.Handler, ch.Export, http.StatusOK, &model.ListCustomersRequest{}, "customers.csv", "text/csv"))
	customers.GET("/:id", handler.Handle(ch.Handler, ch.GetByID, http.StatusOK, &model.CustomerIDRequest{}))
	customers.PUT("/:id", handler.Handle(ch.Handler, ch.Update, http.StatusOK, &model.UpdateCustomerRequest{}))
	customers.DELETE("/:id", handler.HandleNoContent(ch.Handler, ch.Delete, http.StatusNoContent, &model.CustomerIDRequest{}))
	customers.GET("/email/:email", handler.Handle(ch.Handler, ch.GetByEmail, http.StatusOK, &model.CustomerEmailRequest{}))
	customers.HEAD("/email/:email", handler.HandleNoContent(ch.Handler, ch.ExistsByEmail, http.StatusOK, &model.CustomerEmailRequest{}))
}
