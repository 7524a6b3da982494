package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/core/domain"
	"github.com/storeldb/storeapi/internal/core/service"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	guard = guardOrPass(guard)

	rg.GET("", h.ListProducts)
	rg.POST("", guard, h.CreateProduct)
	rg.GET("/:id", h.GetProduct)
	rg.PUT("/:id", guard, h.UpdateProduct)
	rg.DELETE("/:id", guard, h.DeleteProduct)

	rg.GET("/buscar/precio-mayor-a/:precio", h.ProductsPricedAbove)
	rg.GET("/sin-descripcion", h.ProductsWithoutDescription)
	rg.GET("/precio-promedio", h.AveragePrice)
	rg.GET("/mas-caro", h.MostExpensive)
	rg.GET("/:id/clientes", h.ProductClients)
}

// ListProducts handles GET /api/Productos
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Router /api/Productos [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

// GetProduct handles GET /api/Productos/:id
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Productos/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := intParam(c, "id", "product ID")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// CreateProduct handles POST /api/Productos
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.ProductRequest true "Product to add"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/Productos [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	product := domain.NewProduct(req.Name, req.Description, *req.Price)
	if err := h.productService.CreateProduct(c.Request.Context(), product); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Location", "/api/Productos/"+strconv.Itoa(product.ID))
	c.JSON(http.StatusCreated, toProductResponse(product))
}

// UpdateProduct handles PUT /api/Productos/:id
// @Summary Replace a product
// @Description The body product_id must match the path.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body dto.ProductRequest true "Updated product"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Productos/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := intParam(c, "id", "product ID")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	product := &domain.Product{
		ID:          req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := h.productService.UpdateProduct(c.Request.Context(), id, product); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/Productos/:id
// @Summary Delete a product
// @Description Products referenced by an order cannot be deleted.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/Productos/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := intParam(c, "id", "product ID")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ProductsPricedAbove handles GET /api/Productos/buscar/precio-mayor-a/:precio
// @Summary Products priced above a threshold
// @Tags products
// @Produce json
// @Param precio path number true "Price threshold"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Productos/buscar/precio-mayor-a/{precio} [get]
func (h *ProductHandler) ProductsPricedAbove(c *gin.Context) {
	threshold, err := decimal.NewFromString(c.Param("precio"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "Invalid price: "+c.Param("precio"))
		return
	}

	products, err := h.productService.ProductsPricedAbove(c.Request.Context(), threshold)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

// ProductsWithoutDescription handles GET /api/Productos/sin-descripcion
// @Summary Products without a description
// @Tags products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Productos/sin-descripcion [get]
func (h *ProductHandler) ProductsWithoutDescription(c *gin.Context) {
	products, err := h.productService.ProductsWithoutDescription(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

// AveragePrice handles GET /api/Productos/precio-promedio
// @Summary Average product price
// @Description Zero when there are no products.
// @Tags products
// @Produce json
// @Success 200 {number} number
// @Router /api/Productos/precio-promedio [get]
func (h *ProductHandler) AveragePrice(c *gin.Context) {
	avg, err := h.productService.AveragePrice(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, avg)
}

// MostExpensive handles GET /api/Productos/mas-caro
// @Summary Most expensive product
// @Tags products
// @Produce json
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Productos/mas-caro [get]
func (h *ProductHandler) MostExpensive(c *gin.Context) {
	product, err := h.productService.MostExpensiveProduct(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// ProductClients handles GET /api/Productos/:id/clientes
// @Summary Clients who bought a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/Productos/{id}/clientes [get]
func (h *ProductHandler) ProductClients(c *gin.Context) {
	id, ok := intParam(c, "id", "product ID")
	if !ok {
		return
	}

	clients, err := h.productService.ProductClients(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientResponses(clients))
}
