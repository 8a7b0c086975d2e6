package handler

import (
	"net/http"

	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// LookupHandler exposes the reference tables clients use to populate
// pickers. A single endpoint returns all six lists in one round trip.
type LookupHandler struct {
	lookupRepo repository.LookupRepository
}

func NewLookupHandler(lookupRepo repository.LookupRepository) *LookupHandler {
	return &LookupHandler{lookupRepo: lookupRepo}
}

func (h *LookupHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	languages, err := h.lookupRepo.ActiveLanguages(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	frameworks, err := h.lookupRepo.ActiveFrameworks(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	databases, err := h.lookupRepo.ActiveDatabases(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	environments, err := h.lookupRepo.ActiveEnvironments(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	statuses, err := h.lookupRepo.ActiveStatuses(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	projectTypes, err := h.lookupRepo.ActiveProjectTypes(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"programming_languages": languages,
		"frameworks":            frameworks,
		"databases":             databases,
		"environments":          environments,
		"statuses":              statuses,
		"project_types":         projectTypes,
	})
}
