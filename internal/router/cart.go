package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/storefront/pkg/global"
	"julianmorley.ca/con-plar/storefront/pkg/models"
)

// GetCart returns the session's cart, creating an empty one on first access.
func (h *Handler) GetCart(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondParamError(c, err)
		return
	}

	cart, err := h.carts.Get(c.Request.Context(), uri.SessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Product added to cart successfully", cart))
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), c.Param("itemId"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Cart updated successfully", cart))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req models.RemoveCartItemRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), c.Param("itemId"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Item removed from cart successfully", cart))
}

func (h *Handler) ClearCart(c *gin.Context) {
	var uri sessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondParamError(c, err)
		return
	}

	cart, err := h.carts.Clear(c.Request.Context(), uri.SessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Cart cleared successfully", cart))
}
