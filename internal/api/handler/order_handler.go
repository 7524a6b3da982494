package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/api/util"
	"github.com/storeldb/storeapi/internal/core/service"
)

type OrderHandler struct {
	orderService *service.OrderService
	excelService *service.ExcelService
}

func NewOrderHandler(orderService *service.OrderService, excelService *service.ExcelService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		excelService: excelService,
	}
}

func (h *OrderHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	guard = guardOrPass(guard)

	rg.GET("", h.ListOrders)
	rg.POST("", guard, h.CreateOrder)
	rg.GET("/:id/con-detalles", h.OrderWithDetails)
	rg.GET("/:id/export", h.ExportOrder)
	rg.GET("/:id/details", h.OrderItems)
	rg.GET("/:id/total-productos", h.TotalQuantity)
	rg.GET("/despues-de/:fecha", h.OrdersAfter)
}

// ListOrders handles GET /api/Orders
// @Summary List orders with items
// @Tags orders
// @Produce json
// @Success 200 {array} dto.OrderResponse
// @Router /api/Orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// CreateOrder handles POST /api/Orders
// @Summary Create an order with its details
// @Description Items may repeat a product; each item becomes its own detail line.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body dto.CreateOrderRequest true "Order to place"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/Orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.ClientID, items)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Location", "/api/Orders/"+strconv.Itoa(order.OrderID)+"/con-detalles")
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// OrderWithDetails handles GET /api/Orders/:id/con-detalles
// @Summary Order with priced lines
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} dto.OrderWithDetailsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Orders/{id}/con-detalles [get]
func (h *OrderHandler) OrderWithDetails(c *gin.Context) {
	id, ok := intParam(c, "id", "order ID")
	if !ok {
		return
	}

	order, err := h.orderService.OrderWithDetails(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderWithDetailsResponse(order))
}

// ExportOrder handles GET /api/Orders/:id/export
// @Summary Order detail workbook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Order ID"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Orders/{id}/export [get]
func (h *OrderHandler) ExportOrder(c *gin.Context) {
	id, ok := intParam(c, "id", "order ID")
	if !ok {
		return
	}

	order, err := h.orderService.OrderWithDetails(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	data, err := h.excelService.OrderDetailReport(order)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendXLSX(c, h.excelService.OrderReportFileName(order.OrderID), data)
}

// OrderItems handles GET /api/Orders/:id/details
// @Summary Order items
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} dto.OrderItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Orders/{id}/details [get]
func (h *OrderHandler) OrderItems(c *gin.Context) {
	id, ok := intParam(c, "id", "order ID")
	if !ok {
		return
	}

	items, err := h.orderService.OrderItems(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderItemResponses(items))
}

// TotalQuantity handles GET /api/Orders/:id/total-productos
// @Summary Units in an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {integer} int
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Orders/{id}/total-productos [get]
func (h *OrderHandler) TotalQuantity(c *gin.Context) {
	id, ok := intParam(c, "id", "order ID")
	if !ok {
		return
	}

	total, err := h.orderService.TotalQuantity(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, total)
}

// OrdersAfter handles GET /api/Orders/despues-de/:fecha
// @Summary Orders placed after a date
// @Description Orders placed on a later calendar day than fecha.
// @Tags orders
// @Produce json
// @Param fecha path string true "Date"
// @Success 200 {array} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Orders/despues-de/{fecha} [get]
func (h *OrderHandler) OrdersAfter(c *gin.Context) {
	date, err := util.ParseDateTime(c.Param("fecha"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orderService.OrdersAfter(c.Request.Context(), date)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponses(orders))
}
