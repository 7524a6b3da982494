package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/api/util"
	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/repository"
	"github.com/storeldb/storeapi/internal/core/service"
)

type ClientHandler struct {
	clientService *service.ClientService
	excelService  *service.ExcelService
}

func NewClientHandler(clientService *service.ClientService, excelService *service.ExcelService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		excelService:  excelService,
	}
}

// Register mounts the client routes on rg. guard runs before mutating routes.
func (h *ClientHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	guard = guardOrPass(guard)

	rg.GET("", h.ListClients)
	rg.POST("", guard, h.CreateClient)
	rg.GET("/:id", h.GetClient)
	rg.PUT("/:id", guard, h.UpdateClient)
	rg.DELETE("/:id", guard, h.DeleteClient)

	rg.GET("/buscar/:termino", h.SearchClients)
	rg.GET("/con-mas-pedidos", h.ClientWithMostOrders)
	rg.GET("/:id/productos", h.ClientProducts)
	rg.GET("/:id/con-pedidos", h.ClientWithOrders)
	rg.GET("/con-total-productos", h.ClientTotals)
	rg.GET("/ventas-por-cliente", h.SalesByClient)
	rg.GET("/top-clientes/:top", h.TopClients)
	rg.GET("/export/ventas", h.ExportSales)
}

// ListClients handles GET /api/Clientes
// @Summary List clients
// @Description Without page or per_page every matching client is returned.
// @Tags clients
// @Produce json
// @Param query query string false "Filters as field|op|value, comma separated"
// @Param order query string false "Ordering as field|asc or field|desc, comma separated"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} dto.ClientListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/Clientes [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	filter, ok := parseListFilter(c, h.clientService.ClientFields())
	if !ok {
		return
	}

	clients, count, err := h.clientService.ListClients(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClientListResponse{
		Items: toClientResponses(clients),
		Pagination: dto.PaginationInfo{
			Total:      count,
			Page:       filter.Page,
			PerPage:    filter.PerPage,
			TotalPages: totalPages(count, filter.PerPage),
		},
	})
}

// GetClient handles GET /api/Clientes/:id
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := intParam(c, "id", "client ID")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// CreateClient handles POST /api/Clientes
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body dto.ClientRequest true "Client to add"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/Clientes [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	client := domain.NewClient(req.Name, req.Email)
	if err := h.clientService.CreateClient(c.Request.Context(), client); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Location", "/api/Clientes/"+strconv.Itoa(client.ID))
	c.JSON(http.StatusCreated, toClientResponse(client))
}

// UpdateClient handles PUT /api/Clientes/:id
// @Summary Replace a client
// @Description The body client_id must match the path.
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param client body dto.ClientRequest true "Updated client"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/Clientes/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := intParam(c, "id", "client ID")
	if !ok {
		return
	}

	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	client := &domain.Client{ID: req.ClientID, Name: req.Name, Email: req.Email}
	if err := h.clientService.UpdateClient(c.Request.Context(), id, client); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteClient handles DELETE /api/Clientes/:id
// @Summary Delete a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := intParam(c, "id", "client ID")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SearchClients handles GET /api/Clientes/buscar/:termino
// @Summary Clients whose name starts with a term
// @Description The match ignores case.
// @Tags clients
// @Produce json
// @Param termino path string true "Name prefix"
// @Success 200 {array} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/buscar/{termino} [get]
func (h *ClientHandler) SearchClients(c *gin.Context) {
	term := strings.TrimSpace(c.Param("termino"))
	if term == "" {
		writeError(c, http.StatusBadRequest, "Search term is required")
		return
	}

	clients, err := h.clientService.SearchByName(c.Request.Context(), term)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponses(clients))
}

// ClientWithMostOrders handles GET /api/Clientes/con-mas-pedidos
// @Summary Client with the most orders
// @Description Ties go to the lowest client ID.
// @Tags clients
// @Produce json
// @Success 200 {object} dto.ClientMostOrdersResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/con-mas-pedidos [get]
func (h *ClientHandler) ClientWithMostOrders(c *gin.Context) {
	top, err := h.clientService.ClientWithMostOrders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClientMostOrdersResponse{
		Client:      toClientResponse(top.Client),
		TotalOrders: top.TotalOrders,
	})
}

// ClientProducts handles GET /api/Clientes/:id/productos
// @Summary Distinct products bought by a client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/{id}/productos [get]
func (h *ClientHandler) ClientProducts(c *gin.Context) {
	id, ok := intParam(c, "id", "client ID")
	if !ok {
		return
	}

	products, err := h.clientService.ClientProducts(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

// ClientWithOrders handles GET /api/Clientes/:id/con-pedidos
// @Summary Client with order summaries
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.ClientWithOrdersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/{id}/con-pedidos [get]
func (h *ClientHandler) ClientWithOrders(c *gin.Context) {
	id, ok := intParam(c, "id", "client ID")
	if !ok {
		return
	}

	result, err := h.clientService.ClientWithOrders(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := dto.ClientWithOrdersResponse{
		ClientID: result.Client.ID,
		Name:     result.Client.Name,
		Email:    result.Client.Email,
		Orders:   make([]dto.OrderSummaryResponse, len(result.Orders)),
	}
	for i, o := range result.Orders {
		resp.Orders[i] = dto.OrderSummaryResponse{
			OrderID:    o.OrderID,
			OrderDate:  o.OrderDate,
			TotalItems: o.TotalItems,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ClientTotals handles GET /api/Clientes/con-total-productos
// @Summary Order, quantity and spend totals per client
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientTotalsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/con-total-productos [get]
func (h *ClientHandler) ClientTotals(c *gin.Context) {
	totals, err := h.clientService.ClientTotals(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]dto.ClientTotalsResponse, len(totals))
	for i, t := range totals {
		resp[i] = dto.ClientTotalsResponse{
			ClientID:               t.ClientID,
			Name:                   t.Name,
			Email:                  t.Email,
			TotalOrders:            t.TotalOrders,
			TotalProductsPurchased: t.TotalQuantity,
			TotalSpent:             t.TotalSpent,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// SalesByClient handles GET /api/Clientes/ventas-por-cliente
// @Summary Sales by client
// @Description A date-only fechaFin includes the whole day.
// @Tags clients
// @Produce json
// @Param fechaInicio query string false "Earliest order date"
// @Param fechaFin query string false "Latest order date"
// @Param montoMinimo query number false "Minimum total sales"
// @Success 200 {array} dto.ClientSalesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/ventas-por-cliente [get]
func (h *ClientHandler) SalesByClient(c *gin.Context) {
	var filter repository.SalesFilter

	if value := c.Query("fechaInicio"); value != "" {
		from, err := util.ParseDateTime(value)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.From = &from
	}

	if value := c.Query("fechaFin"); value != "" {
		to, err := util.ParseDateTime(value)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		if util.IsDateOnly(value) {
			to = util.EndOfDay(to)
		}
		filter.To = &to
	}

	if value := c.Query("montoMinimo"); value != "" {
		minTotal, err := decimal.NewFromString(value)
		if err != nil {
			writeError(c, http.StatusBadRequest, "Invalid montoMinimo: "+value)
			return
		}
		filter.MinTotal = &minTotal
	}

	sales, err := h.clientService.SalesByClient(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientSalesResponses(sales))
}

// TopClients handles GET /api/Clientes/top-clientes/:top
// @Summary Top clients by sales
// @Tags clients
// @Produce json
// @Param top path int true "Number of clients"
// @Success 200 {array} dto.ClientSalesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Clientes/top-clientes/{top} [get]
func (h *ClientHandler) TopClients(c *gin.Context) {
	n, ok := intParam(c, "top", "number of clients")
	if !ok {
		return
	}

	sales, err := h.clientService.TopClients(c.Request.Context(), n)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientSalesResponses(sales))
}

// ExportSales handles GET /api/Clientes/export/ventas
// @Summary Sales by client workbook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/Clientes/export/ventas [get]
func (h *ClientHandler) ExportSales(c *gin.Context) {
	sales, err := h.clientService.SalesReport(c.Request.Context(), repository.SalesFilter{})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	data, err := h.excelService.SalesByClientReport(sales)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendXLSX(c, h.excelService.SalesReportFileName(), data)
}
