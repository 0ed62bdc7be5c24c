package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// GetAllProducts lists the catalog with optional category, price range,
// text search and sort.
func (h *Handler) GetAllProducts(c *gin.Context) {
	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondParamError(c, err)
		return
	}

	products, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.ListResponse(products, len(products)))
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.MessageResponse("Product created successfully", product))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Product updated successfully", product))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if _, err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Product deleted successfully", gin.H{}))
}
