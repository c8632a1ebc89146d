package controllers

import (
	"errors"
	"net/http"
	"time"

	"shopfront/models"
	"shopfront/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	service *services.CheckoutService

	// Minimum time the submit indicator is shown before the redirect is
	// issued; the wait covers only what the network call left over.
	redirectDelay time.Duration
}

func NewCheckoutController(service *services.CheckoutService, redirectDelay time.Duration) *CheckoutController {
	return &CheckoutController{
		service:       service,
		redirectDelay: redirectDelay,
	}
}

// GetSummary godoc
// @Summary Checkout summary
// @Description Get the order summary for the checkout page: cart items, pricing breakdown, and form state
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Success 302 "Redirect to /cart when the cart is empty"
// @Router /checkout [get]
func (ctrl *CheckoutController) GetSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	summary, err := ctrl.service.Summary(c.Request.Context(), userID)
	if errors.Is(err, services.ErrCartEmpty) {
		c.Redirect(http.StatusFound, "/cart")
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load checkout summary"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Checkout summary", "data": summary})
}

// Submit godoc
// @Summary Submit checkout
// @Description Validate the shipping form, request a payment link from the commerce API, and redirect to it
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param form body models.ShippingForm true "Contact and shipping address"
// @Success 303 "Redirect to the external payment link"
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	userID := c.GetInt("user_id")

	var form models.ShippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	started := time.Now()

	shortURL, err := ctrl.service.Submit(c.Request.Context(), userID, &form)
	if err != nil {
		ctrl.renderSubmitError(c, err)
		return
	}

	// Let the in-progress indicator play out before the page is replaced.
	ctrl.waitRemaining(c, started)
	c.Redirect(http.StatusSeeOther, shortURL)
}

func (ctrl *CheckoutController) renderSubmitError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var paymentErr *services.PaymentError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: validationErr.Error(),
			Notification: &models.Notification{
				Severity:    "destructive",
				Title:       "Missing information",
				Description: validationErr.Error(),
			},
		})
	case errors.Is(err, services.ErrCartEmpty):
		c.Redirect(http.StatusFound, "/cart")
	case errors.Is(err, services.ErrSubmissionInFlight):
		c.JSON(409, models.ErrorResponse{
			Success: false,
			Message: "A checkout submission is already in progress",
		})
	case errors.As(err, &paymentErr):
		c.JSON(502, models.ErrorResponse{
			Success: false,
			Message: "Failed to process order",
			Notification: &models.Notification{
				Severity:    "destructive",
				Title:       "Checkout failed",
				Description: "Something went wrong placing your order. Please try again.",
			},
		})
	default:
		c.JSON(500, gin.H{"success": false, "message": "Failed to process order"})
	}
}

// waitRemaining sleeps out whatever is left of the redirect delay, giving up
// early if the client is gone.
func (ctrl *CheckoutController) waitRemaining(c *gin.Context, started time.Time) {
	if ctrl.redirectDelay <= 0 {
		return
	}
	remaining := ctrl.redirectDelay - time.Since(started)
	if remaining <= 0 {
		return
	}
	select {
	case <-time.After(remaining):
	case <-c.Request.Context().Done():
	}
}
