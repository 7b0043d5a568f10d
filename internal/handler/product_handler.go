package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes mounts the catalog API on api. Mutating routes run behind
// admin.
func (h *ProductHandler) RegisterRoutes(api *gin.RouterGroup, admin gin.HandlerFunc) {
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/dashboard", h.DashboardStats)
	api.GET("/recommendations", h.RecommendProducts)

	protected := api.Group("", admin)
	protected.POST("/products", h.CreateProduct)
	protected.PUT("/products/:id", h.UpdateProduct)
	protected.DELETE("/products/:id", h.DeleteProduct)
	protected.POST("/seed", h.Seed)
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, domain.Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, domain.Response{Success: false, Error: msg})
}

func (h *ProductHandler) internalError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Error(err))
	h.logger.Error(msg, fields...)
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, msg)
}

// ListProducts returns the whole catalog, or a single product when the slug
// query parameter is present.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if slug := c.Query("slug"); slug != "" {
		product, err := h.productService.GetProductBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				fail(c, http.StatusNotFound, "Product not found")
				return
			}
			h.internalError(c, "Failed to fetch products", err, zap.String("slug", slug))
			return
		}
		ok(c, http.StatusOK, product)
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch products", err)
		return
	}
	ok(c, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		h.internalError(c, "Failed to fetch product", err, zap.String("product_id", productID))
		return
	}
	ok(c, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		fail(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			fail(c, http.StatusBadRequest, verr.Error())
			return
		}
		h.internalError(c, "Failed to create product", err)
		return
	}
	ok(c, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var req domain.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		fail(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			fail(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, service.ErrNotFound):
			fail(c, http.StatusNotFound, "Product not found")
		default:
			h.internalError(c, "Failed to update product", err, zap.String("product_id", productID))
		}
		return
	}
	ok(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	deleted, err := h.productService.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		h.internalError(c, "Failed to delete product", err, zap.String("product_id", productID))
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, domain.Response{Success: true})
}

func (h *ProductHandler) DashboardStats(c *gin.Context) {
	stats, err := h.productService.DashboardStats(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to fetch dashboard stats", err)
		return
	}
	ok(c, http.StatusOK, stats)
}

func (h *ProductHandler) RecommendProducts(c *gin.Context) {
	limit := service.DefaultRecommendLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fail(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	products, err := h.productService.RecommendProducts(c.Request.Context(), limit)
	if err != nil {
		h.internalError(c, "Failed to fetch recommendations", err)
		return
	}
	ok(c, http.StatusOK, products)
}

func (h *ProductHandler) Seed(c *gin.Context) {
	created, err := h.productService.Seed(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to seed database", err)
		return
	}
	ok(c, http.StatusOK, domain.SeedResult{Created: created})
}
