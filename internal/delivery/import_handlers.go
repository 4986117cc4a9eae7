package delivery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"adsplanner/internal/domain"
	"adsplanner/internal/infrastructure"
	"adsplanner/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Import replaces the workspace with the uploaded rows
func (h *HTTPHandlers) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	rows, source, err := h.decodeUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":      "Upload too large",
				"message":    fmt.Sprintf("uploads are limited to %d bytes", h.maxUploadBytes),
				"request_id": c.GetString("request_id"),
			})
			return
		}
		h.respondError(c, err, http.StatusBadRequest, "Invalid import payload")
		return
	}

	summary, err := h.importService.Import(c.Request.Context(), rows, source)
	if err != nil {
		h.respondError(c, err, http.StatusInternalServerError, "Import failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Import completed successfully",
		"summary":    summary,
		"request_id": c.GetString("request_id"),
	})
}

// ImportRemote pulls rows from the configured provider feed
func (h *HTTPHandlers) ImportRemote(c *gin.Context) {
	summary, err := h.importService.ImportRemote(c.Request.Context())
	if err != nil {
		h.respondError(c, err, http.StatusBadGateway, "Remote import failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Remote import completed successfully",
		"summary":    summary,
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) decodeUpload(c *gin.Context) ([]domain.Row, string, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("%w: missing file field: %w", domain.ErrInvalidInput, err)
		}
		format, err := infrastructure.DetectFormat(header.Filename, "")
		if err != nil {
			return nil, "", err
		}

		f, err := header.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open upload: %w", err)
		}
		defer f.Close()

		rows, err := infrastructure.DecodeRows(f, format)
		return rows, usecase.SourceUpload, err
	}

	format, err := infrastructure.DetectFormat("", contentType)
	if err != nil {
		return nil, "", fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidInput, contentType)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", err
	}

	source := usecase.SourceUpload
	if format == infrastructure.FormatJSON {
		source = usecase.SourceJSON
	}
	rows, err := infrastructure.DecodeRows(bytes.NewReader(body), format)
	return rows, source, err
}
