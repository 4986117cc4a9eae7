package delivery

import (
	"net/http"

	"adsplanner/internal/domain"
	"adsplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandlers) ListNegativeLists(c *gin.Context) {
	lists, err := h.listService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load negative lists")
		return
	}
	c.JSON(http.StatusOK, gin.H{"negative_lists": lists, "count": len(lists)})
}

func (h *HTTPHandlers) GetNegativeList(c *gin.Context) {
	list, err := h.listService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load negative list")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *HTTPHandlers) CreateNegativeList(c *gin.Context) {
	var req domain.NegativeKeywordList
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid negative list payload", err)
		return
	}

	list, err := h.listService.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to create negative list")
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *HTTPHandlers) UpdateNegativeList(c *gin.Context) {
	var patch usecase.NegativeListPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, "Invalid negative list payload", err)
		return
	}

	list, err := h.listService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to update negative list")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *HTTPHandlers) DeleteNegativeList(c *gin.Context) {
	if err := h.listService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to delete negative list")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandlers) ToggleNegativeListCampaign(c *gin.Context) {
	list, err := h.listService.ToggleCampaign(c.Request.Context(), c.Param("id"), c.Param("campaignId"))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to toggle campaign")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetConflicts runs detection; ?group=keyword groups the result per keyword
func (h *HTTPHandlers) GetConflicts(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("group") == "keyword" {
		groups, err := h.conflictService.DetectGrouped(ctx)
		if err != nil {
			h.respondError(c, err, http.StatusInternalServerError, "Conflict detection failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
		return
	}

	conflicts, err := h.conflictService.Detect(ctx)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Conflict detection failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts, "count": len(conflicts)})
}
