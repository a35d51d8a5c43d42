package handlers

import (
	"net/http"

	"unifest/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateRegistration - POST /api/registrations
func (h *Handlers) CreateRegistration(c *gin.Context) {
	var req models.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Registrations.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create registration")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListRegistrations - GET /api/registrations
func (h *Handlers) ListRegistrations(c *gin.Context) {
	response, err := h.services.Registrations.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list registrations")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRegistration - GET /api/registrations/:id
func (h *Handlers) GetRegistration(c *gin.Context) {
	reg, err := h.services.Registrations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get registration")
		return
	}

	c.JSON(http.StatusOK, reg)
}

// CancelRegistration - PATCH /api/registrations/cancel
func (h *Handlers) CancelRegistration(c *gin.Context) {
	var req models.CancelRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Registrations.Cancel(c.Request.Context(), req.RegistrationID); err != nil {
		h.respondError(c, err, "Failed to cancel registration")
		return
	}

	c.Status(http.StatusOK)
}

// QuotePrice - POST /api/registrations/quote
// Advisory price for the registration form; the commit-time computation is
// the authoritative one.
func (h *Handlers) QuotePrice(c *gin.Context) {
	var req models.PriceQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.services.Registrations.Quote(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Failed to compute price")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetRegistrationTicket - GET /api/registrations/:id/ticket
func (h *Handlers) GetRegistrationTicket(c *gin.Context) {
	ticket, err := h.services.Tickets.GetByRegistration(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}
