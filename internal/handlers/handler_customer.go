package handlers

import (
	"net/http"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests for customers and their service
// locations.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

// registerCustomerRoutes sets up the routes for customers and nested
// location management.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customer_id", h.getCustomer)
		customers.PUT("/:customer_id", h.updateCustomer)
		customers.DELETE("/:customer_id", h.deactivateCustomer)

		locations := customers.Group("/:customer_id/locations")
		{
			locations.POST("", h.createLocation)
			locations.GET("", h.listLocations)
			locations.GET("/:location_id", h.getLocation)
			locations.PUT("/:location_id", h.updateLocation)
		}
	}
}

// createCustomer godoc
// @Summary Create a new customer
// @Description Creates a new customer in the company.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Retrieves a filtered, paginated list of customers.
// @Tags customers
// @Produce json
// @Param search query string false "Match against name, contact or email"
// @Param includeInactive query bool false "Include deactivated customers"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 401 {object} ErrorResponse
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer
// @Description Retrieves a customer by ID.
// @Tags customers
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), companyID, c.Param("customer_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates an existing customer's details.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Customer fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), companyID, c.Param("customer_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deactivateCustomer godoc
// @Summary Deactivate a customer
// @Description Marks a customer as inactive. Existing documents keep their
// @Description customer reference.
// @Tags customers
// @Param customer_id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id} [delete]
func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), companyID, c.Param("customer_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate customer")
		return
	}

	c.Status(http.StatusNoContent)
}

// createLocation godoc
// @Summary Create a service location
// @Description Creates a new location under a customer.
// @Tags locations
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id}/locations [post]
func (h *customerHandler) createLocation(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	location, err := h.customerService.CreateLocation(c.Request.Context(), companyID, c.Param("customer_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create location")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// listLocations godoc
// @Summary List service locations
// @Description Retrieves all locations for a customer.
// @Tags locations
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.ListLocationsResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id}/locations [get]
func (h *customerHandler) listLocations(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	locations, err := h.customerService.ListLocations(c.Request.Context(), companyID, c.Param("customer_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list locations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLocationsResponse(locations))
}

// getLocation godoc
// @Summary Get a service location
// @Description Retrieves a location by ID for a customer.
// @Tags locations
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param location_id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id}/locations/{location_id} [get]
func (h *customerHandler) getLocation(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	location, err := h.customerService.GetLocationByID(c.Request.Context(), companyID, c.Param("customer_id"), c.Param("location_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve location")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// updateLocation godoc
// @Summary Update a service location
// @Description Updates an existing location's details.
// @Tags locations
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer ID"
// @Param location_id path string true "Location ID"
// @Param location body dto.UpdateLocationRequest true "Location fields to update"
// @Success 200 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{customer_id}/locations/{location_id} [put]
func (h *customerHandler) updateLocation(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	location, err := h.customerService.UpdateLocation(c.Request.Context(), companyID, c.Param("customer_id"), c.Param("location_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update location")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}
