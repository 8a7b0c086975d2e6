package handler

import (
	"net/http"
	"strings"

	"github.com/devfolio/backend/internal/service"
	"github.com/devfolio/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PortfolioHandler serves the public, unauthenticated portfolio pages.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
}

func NewPortfolioHandler(portfolioService service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) GetProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))

	view, err := h.portfolioService.PublicProfile(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *PortfolioHandler) GetProjectDetail(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := h.portfolioService.PublicProjectDetail(c.Request.Context(), username, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *PortfolioHandler) SearchProjects(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	query := strings.TrimSpace(c.Query("q"))

	hits, err := h.portfolioService.SearchProjects(c.Request.Context(), username, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": hits})
}
