package handlers

import (
	"net/http"
	"strconv"

	"unifest/internal/models"

	"github.com/gin-gonic/gin"
)

// GetTicket - GET /api/tickets/:code
// Returns the ticket row plus the scannable payload.
func (h *Handlers) GetTicket(c *gin.Context) {
	ticket, payload, err := h.services.Tickets.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err, "Failed to get ticket")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket":  ticket,
		"payload": payload,
	})
}

// GetTicketQR - GET /api/tickets/:code/qr
func (h *Handlers) GetTicketQR(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))

	png, err := h.services.Tickets.QR(c.Request.Context(), c.Param("code"), size)
	if err != nil {
		h.respondError(c, err, "Failed to render QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// VerifyTicket - POST /api/tickets/verify
// Venue scan endpoint. The response always carries a verdict; only infra
// failures surface as errors.
func (h *Handlers) VerifyTicket(c *gin.Context) {
	var req models.VerifyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tickets.Verify(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to verify ticket")
		return
	}

	c.JSON(http.StatusOK, response)
}
