package handlers

import (
	"log/slog"
	"net/http"

	"unifest/internal/models"

	"github.com/gin-gonic/gin"
)

// NotifyPaymentCompleted - GET /api/payments/success
// Browser redirect from the gateway. The real status is re-checked against
// the gateway before the registration changes.
func (h *Handlers) NotifyPaymentCompleted(c *gin.Context) {
	paymentID := c.Query("paymentId")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentId is required"})
		return
	}

	if err := h.services.Payments.ConfirmFromRedirect(c.Request.Context(), paymentID); err != nil {
		slog.Error("Failed to confirm payment from redirect", "error", err, "payment_id", paymentID)
	}

	c.Status(http.StatusOK)
}

// NotifyPaymentFailed - GET /api/payments/fail
func (h *Handlers) NotifyPaymentFailed(c *gin.Context) {
	paymentID := c.Query("paymentId")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentId is required"})
		return
	}

	slog.Error("Payment failed redirect", "payment_id", paymentID)

	c.Status(http.StatusOK)
}

// OnPaymentUpdates - POST /api/payments/notifications
// Webhook from the payment gateway.
func (h *Handlers) OnPaymentUpdates(c *gin.Context) {
	var notification models.PaymentNotificationPayload
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Payments.HandleNotification(c.Request.Context(), &notification); err != nil {
		h.respondError(c, err, "Failed to handle notification")
		return
	}

	c.Status(http.StatusOK)
}
