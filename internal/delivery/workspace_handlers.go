package delivery

import (
	"fmt"
	"net/http"

	"adsplanner/internal/domain"
	"adsplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

type bulkDeleteRequest struct {
	Campaigns []string `json:"campaigns"`
	AdGroups  []string `json:"adGroups"`
	Keywords  []string `json:"keywords"`
	Ads       []string `json:"ads"`
}

func (h *HTTPHandlers) ListCampaigns(c *gin.Context) {
	ws, err := h.workspaceService.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load campaigns")
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": ws.Campaigns, "count": len(ws.Campaigns)})
}

func (h *HTTPHandlers) CreateCampaign(c *gin.Context) {
	var req domain.Campaign
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid campaign payload", err)
		return
	}

	campaign, err := h.workspaceService.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to create campaign")
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *HTTPHandlers) UpdateCampaign(c *gin.Context) {
	var patch usecase.CampaignPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, "Invalid campaign payload", err)
		return
	}

	campaign, err := h.workspaceService.UpdateCampaign(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to update campaign")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *HTTPHandlers) ListAdGroupsByCampaign(c *gin.Context) {
	adGroups, err := h.workspaceService.AdGroupsByCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load ad groups")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ad_groups": adGroups, "count": len(adGroups)})
}

func (h *HTTPHandlers) ListAdGroups(c *gin.Context) {
	ws, err := h.workspaceService.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load ad groups")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ad_groups": ws.AdGroups, "count": len(ws.AdGroups)})
}

func (h *HTTPHandlers) CreateAdGroup(c *gin.Context) {
	var req domain.AdGroup
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid ad group payload", err)
		return
	}

	adGroup, err := h.workspaceService.CreateAdGroup(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to create ad group")
		return
	}
	c.JSON(http.StatusCreated, adGroup)
}

func (h *HTTPHandlers) ListKeywordsByAdGroup(c *gin.Context) {
	keywords, err := h.workspaceService.KeywordsByAdGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load keywords")
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords, "count": len(keywords)})
}

func (h *HTTPHandlers) ListAdsByAdGroup(c *gin.Context) {
	ads, err := h.workspaceService.AdsByAdGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load ads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads, "count": len(ads)})
}

func (h *HTTPHandlers) ListKeywords(c *gin.Context) {
	ws, err := h.workspaceService.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load keywords")
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": ws.Keywords, "count": len(ws.Keywords)})
}

func (h *HTTPHandlers) CreateKeyword(c *gin.Context) {
	var req domain.Keyword
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid keyword payload", err)
		return
	}

	keyword, err := h.workspaceService.CreateKeyword(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to create keyword")
		return
	}
	c.JSON(http.StatusCreated, keyword)
}

func (h *HTTPHandlers) ListAds(c *gin.Context) {
	ws, err := h.workspaceService.Snapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to load ads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ws.Ads, "count": len(ws.Ads)})
}

func (h *HTTPHandlers) CreateAd(c *gin.Context) {
	var req domain.Ad
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid ad payload", err)
		return
	}

	ad, err := h.workspaceService.CreateAd(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to create ad")
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// DeleteEntity returns a handler removing one entity of kind by the :id path parameter
func (h *HTTPHandlers) DeleteEntity(kind usecase.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		removed, err := h.workspaceService.Delete(c.Request.Context(), kind, []string{id})
		if err != nil {
			h.respondError(c, err, http.StatusInternalServerError, "Failed to delete entity")
			return
		}
		if removed == 0 {
			h.respondError(c, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound), http.StatusNotFound, "Entity not found")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DeleteEntities removes ids of every kind given in the body
func (h *HTTPHandlers) DeleteEntities(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid delete payload", err)
		return
	}

	ctx := c.Request.Context()
	removed := gin.H{}
	for _, batch := range []struct {
		kind usecase.EntityKind
		ids  []string
	}{
		{usecase.KindCampaign, req.Campaigns},
		{usecase.KindAdGroup, req.AdGroups},
		{usecase.KindKeyword, req.Keywords},
		{usecase.KindAd, req.Ads},
	} {
		n, err := h.workspaceService.Delete(ctx, batch.kind, batch.ids)
		if err != nil {
			h.respondError(c, err, http.StatusInternalServerError, "Failed to delete entities")
			return
		}
		removed[string(batch.kind)] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"removed":    removed,
		"request_id": c.GetString("request_id"),
	})
}
