package controllers

import (
	"errors"
	"strconv"

	"shopfront/models"
	"shopfront/repositories"
	"shopfront/services"
	"shopfront/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// GetCart godoc
// @Summary Get cart
// @Description Get the current user's cart with line totals and total price
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	items, err := ctrl.service.Items(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart retrieved",
		"data": gin.H{
			"items":         items,
			"total":         total,
			"total_display": utils.FormatPrice(total),
		},
	})
}

// AddItem godoc
// @Summary Add to cart
// @Description Add a product to the cart, or bump its quantity if already present
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body models.AddCartItemRequest true "Product and quantity"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	err := ctrl.service.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if errors.Is(err, services.ErrProductNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to add item to cart"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Item added to cart"})
}

// UpdateItem godoc
// @Summary Update cart item
// @Description Change the quantity of one cart line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param item body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid cart item ID"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	err := ctrl.service.UpdateQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if errors.Is(err, repositories.ErrCartItemNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart item"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart item updated"})
}

// RemoveItem godoc
// @Summary Remove cart item
// @Description Remove one line from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid cart item ID"})
		return
	}

	err := ctrl.service.RemoveItem(c.Request.Context(), userID, itemID)
	if errors.Is(err, repositories.ErrCartItemNotFound) {
		c.JSON(404, gin.H{"success": false, "message": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to remove cart item"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart item removed"})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Remove every item from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := ctrl.service.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart cleared"})
}
