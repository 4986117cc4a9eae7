package delivery

import (
	"errors"
	"net/http"
	"time"

	"adsplanner/internal/domain"
	"adsplanner/internal/usecase"
	"adsplanner/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health and info endpoints
const Version = "1.0.0"

// handles HTTP requests
type HTTPHandlers struct {
	importService    *usecase.ImportService
	workspaceService *usecase.WorkspaceService
	listService      *usecase.NegativeListService
	conflictService  *usecase.ConflictService
	maxUploadBytes   int64
	logger           *logger.Logger
}

// creates new HTTP handlers
func NewHTTPHandlers(
	importService *usecase.ImportService,
	workspaceService *usecase.WorkspaceService,
	listService *usecase.NegativeListService,
	conflictService *usecase.ConflictService,
	maxUploadBytes int64,
	logger *logger.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		importService:    importService,
		workspaceService: workspaceService,
		listService:      listService,
		conflictService:  conflictService,
		maxUploadBytes:   maxUploadBytes,
		logger:           logger,
	}
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "adsplanner",
		"version":    Version,
		"request_id": c.GetString("request_id"),
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "Ads Planner",
		"version":     Version,
		"description": "Import ads-editor spreadsheets, manage campaigns and detect negative keyword conflicts",
		"endpoints": gin.H{
			"import": gin.H{
				"path":        "/api/v1/import",
				"methods":     []string{"POST"},
				"description": "Replace the workspace with rows from a JSON array, CSV/TSV body or multipart file (csv, tsv, xlsx)",
			},
			"import_remote": gin.H{
				"path":    "/api/v1/import/remote",
				"methods": []string{"POST"},
			},
			"campaigns": gin.H{
				"path":    "/api/v1/campaigns",
				"methods": []string{"GET", "POST", "PATCH", "DELETE"},
			},
			"ad_groups": gin.H{
				"path":    "/api/v1/ad-groups",
				"methods": []string{"GET", "POST", "DELETE"},
			},
			"keywords": gin.H{
				"path":    "/api/v1/keywords",
				"methods": []string{"GET", "POST", "DELETE"},
			},
			"ads": gin.H{
				"path":    "/api/v1/ads",
				"methods": []string{"GET", "POST", "DELETE"},
			},
			"negative_lists": gin.H{
				"path":    "/api/v1/negative-lists",
				"methods": []string{"GET", "POST", "PUT", "DELETE"},
			},
			"conflicts": gin.H{
				"path":       "/api/v1/conflicts",
				"methods":    []string{"GET"},
				"parameters": gin.H{"group": "Optional: 'keyword' to group conflicts per keyword"},
			},
			"summary": gin.H{
				"path":    "/api/v1/summary",
				"methods": []string{"GET"},
			},
			"export": gin.H{
				"path":       "/api/v1/export",
				"methods":    []string{"GET"},
				"parameters": gin.H{"format": "csv, tsv, xlsx or json (default: csv)"},
			},
			"sync": gin.H{
				"path":    "/api/v1/sync/push",
				"methods": []string{"POST"},
			},
			"reset": gin.H{
				"path":    "/api/v1/reset",
				"methods": []string{"POST"},
			},
		},
		"request_id": c.GetString("request_id"),
	})
}

// respondError maps domain errors onto HTTP statuses. fallback is used for unrecognised errors.
func (h *HTTPHandlers) respondError(c *gin.Context, err error, fallback int, message string) {
	requestID := c.GetString("request_id")
	body := gin.H{
		"error":      message,
		"message":    err.Error(),
		"request_id": requestID,
	}

	status := fallback
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body["error"] = "Validation failed"
		body["fields"] = verr.Fields
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRemoteNotConfigured):
		status = http.StatusServiceUnavailable
	}

	log := h.logger.WithContext(c.Request.Context()).WithError(err)
	if status >= http.StatusInternalServerError {
		log.Error(message)
	} else {
		log.Debug(message)
	}

	_ = c.Error(err)
	c.JSON(status, body)
}

func (h *HTTPHandlers) badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      message,
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}
