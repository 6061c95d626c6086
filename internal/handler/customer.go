package handler

import (
	"github.com/JoshuaHenriques/store-management-rest-api/internal/errs"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/model"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/service"
	"github.com/labstack/echo/v4"
)

// CustomerHandler serves public registration and the customer admin routes.
type CustomerHandler struct {
	Handler
	customerService *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:         NewHandler(s),
		customerService: customerService,
	}
}

// Register creates a customer from the request body.
func (h *CustomerHandler) Register(c echo.Context, req *model.RegisterCustomerRequest) (*model.Customer, error) {
	return h.customerService.Register(c.Request().Context(), req)
}

func (h *CustomerHandler) List(c echo.Context, _ *model.ListCustomersRequest) ([]model.Customer, error) {
	return h.customerService.GetAll(c.Request().Context())
}

func (h *CustomerHandler) GetByID(c echo.Context, req *model.CustomerIDRequest) (*model.Customer, error) {
	return h.customerService.GetByID(c.Request().Context(), req.ID)
}

func (h *CustomerHandler) GetByEmail(c echo.Context, req *model.CustomerEmailRequest) (*model.Customer, error) {
	return h.customerService.GetByEmail(c.Request().Context(), req.Email)
}

// ExistsByEmail succeeds when a customer is registered with the email and
// answers 404 otherwise.
func (h *CustomerHandler) ExistsByEmail(c echo.Context, req *model.CustomerEmailRequest) error {
	exists, err := h.customerService.ExistsByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewNotFoundError("Customer not found", false, nil)
	}
	return nil
}

func (h *CustomerHandler) Update(c echo.Context, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	return h.customerService.Update(c.Request().Context(), req.ID, req)
}

func (h *CustomerHandler) Delete(c echo.Context, req *model.CustomerIDRequest) error {
	return h.customerService.Delete(c.Request().Context(), req.ID)
}

// Export returns every customer as a CSV download.
func (h *CustomerHandler) Export(c echo.Context, _ *model.ListCustomersRequest) ([]byte, error) {
	return h.customerService.ExportCSV(c.Request().Context())
}
