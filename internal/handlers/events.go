package handlers

import (
	"net/http"
	"strconv"

	"unifest/internal/models"
	"unifest/internal/search"

	"github.com/gin-gonic/gin"
)

// CreateEvent - POST /api/events
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	organizerID, _ := c.Get("user_id")

	response, err := h.services.Events.Create(c.Request.Context(), &req, organizerID.(string))
	if err != nil {
		h.respondError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListEvents - GET /api/events
// With a query parameter the listing runs through Elasticsearch; otherwise
// Postgres serves it directly.
func (h *Handlers) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 100"})
		return
	}

	query := c.Query("query")
	collegeID := c.Query("college_id")
	categoryID := c.Query("category_id")
	status := c.Query("status")
	dateFrom := c.Query("date_from")

	var events []models.Event
	var err error

	if query != "" || collegeID != "" || categoryID != "" || dateFrom != "" {
		events, err = h.services.Events.Search(c.Request.Context(), search.SearchParams{
			Query:      query,
			CollegeID:  collegeID,
			CategoryID: categoryID,
			Status:     status,
			DateFrom:   dateFrom,
			Page:       page,
			PageSize:   pageSize,
		})
	} else {
		events, err = h.services.Events.List(c.Request.Context(), status, page, pageSize)
	}
	if err != nil {
		h.respondError(c, err, "Failed to list events")
		return
	}

	response := make(models.ListEventsResponse, len(events))
	for i, event := range events {
		response[i] = models.ListEventsResponseItem{
			ID:                event.ID,
			Title:             event.Title,
			EventStatus:       event.EventStatus,
			ParticipationType: event.ParticipationType,
			StartDate:         event.StartDate,
			Location:          event.Location,
			IndividualPrice:   event.IndividualPrice,
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetEvent - GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	event, err := h.services.Events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateEventStatus - PATCH /api/events/:id/status
func (h *Handlers) UpdateEventStatus(c *gin.Context) {
	var req models.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Events.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		h.respondError(c, err, "Failed to update event status")
		return
	}

	c.Status(http.StatusOK)
}

// CreateTier - POST /api/events/:id/tiers
func (h *Handlers) CreateTier(c *gin.Context) {
	var req models.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier, err := h.services.Events.CreateTier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to create pricing tier")
		return
	}

	c.JSON(http.StatusCreated, tier)
}

// ListTiers - GET /api/events/:id/tiers
func (h *Handlers) ListTiers(c *gin.Context) {
	tiers, err := h.services.Events.GetTiers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to list pricing tiers")
		return
	}

	c.JSON(http.StatusOK, tiers)
}

// GetEventStats - GET /api/events/:id/stats
func (h *Handlers) GetEventStats(c *gin.Context) {
	stats, err := h.services.Events.GetStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get event stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListEventTeams - GET /api/events/:id/teams
func (h *Handlers) ListEventTeams(c *gin.Context) {
	teams, err := h.services.Teams.GetByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, teams)
}
