package delivery

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"adsplanner/internal/infrastructure"

	"github.com/gin-gonic/gin"
)

// Export downloads the workspace as csv, tsv, xlsx or json
func (h *HTTPHandlers) Export(c *gin.Context) {
	format, err := infrastructure.ParseFormat(c.DefaultQuery("format", string(infrastructure.FormatCSV)))
	if err != nil {
		h.respondError(c, err, http.StatusBadRequest, "Invalid export format")
		return
	}

	doc, err := h.workspaceService.Export(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Export failed")
		return
	}

	var buf bytes.Buffer
	if err := infrastructure.Export(&buf, *doc, format); err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Export failed")
		return
	}

	filename := fmt.Sprintf("ads-export-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, infrastructure.ContentType(format), buf.Bytes())
}

func (h *HTTPHandlers) GetSummary(c *gin.Context) {
	summary, err := h.workspaceService.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Failed to summarize workspace")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SyncPush sends the workspace to the remote provider
func (h *HTTPHandlers) SyncPush(c *gin.Context) {
	doc, err := h.workspaceService.Sync(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusBadGateway, "Sync failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Workspace pushed successfully",
		"campaigns":  len(doc.Campaigns),
		"ad_groups":  len(doc.AdGroups),
		"keywords":   len(doc.Keywords),
		"ads":        len(doc.Ads),
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) Reset(c *gin.Context) {
	if err := h.workspaceService.Reset(c.Request.Context()); err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Reset failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Workspace cleared",
		"request_id": c.GetString("request_id"),
	})
}
