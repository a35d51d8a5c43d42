package handlers

import (
	"net/http"

	"unifest/internal/models"

	"github.com/gin-gonic/gin"
)

// GetTeam - GET /api/teams/:id
func (h *Handlers) GetTeam(c *gin.Context) {
	details, err := h.services.Teams.GetDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get team")
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateTeam - PATCH /api/teams/:id
func (h *Handlers) UpdateTeam(c *gin.Context) {
	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details, err := h.services.Teams.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Failed to update team")
		return
	}

	c.JSON(http.StatusOK, details)
}

// AddTeamMember - POST /api/teams/:id/members
func (h *Handlers) AddTeamMember(c *gin.Context) {
	var req models.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Teams.AddMember(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.respondError(c, err, "Failed to add team member")
		return
	}

	c.Status(http.StatusCreated)
}

// RemoveTeamMember - DELETE /api/teams/:id/members/:memberId
func (h *Handlers) RemoveTeamMember(c *gin.Context) {
	if err := h.services.Teams.RemoveMember(c.Request.Context(), c.Param("memberId")); err != nil {
		h.respondError(c, err, "Failed to remove team member")
		return
	}

	c.Status(http.StatusOK)
}
