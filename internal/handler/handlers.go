// Package handler is the HTTP entry point after the router.
//
// Handlers bind and validate requests through the validation package,
// call the service layer and shape the response.
package handler

import (
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/service"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Customer *CustomerHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Customer: NewCustomerHandler(s, services.Customer),
	}
}
