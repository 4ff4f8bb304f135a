package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// ScanHandler handles the smart scanner flow
type ScanHandler struct {
	scannerService *services.ScannerService
	logger         *logger.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scannerService *services.ScannerService, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{
		scannerService: scannerService,
		logger:         logger,
	}
}

// Scan godoc
// @Summary Scan an image
// @Description Recognize an image and return the result with draft records, nothing is saved yet
// @Tags scanner
// @Accept json
// @Produce json
// @Param request body ports.ScanRequest true "Base64 image and optional category hint"
// @Success 200 {object} ports.ScanResponse
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /scan [post]
func (h *ScanHandler) Scan(c echo.Context) error {
	var req ports.ScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.scannerService.Scan(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Scan failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// AcceptScan godoc
// @Summary Accept scan drafts
// @Description Save the possibly edited drafts of a scan into the calendar and the shopping list
// @Tags scanner
// @Accept json
// @Produce json
// @Param request body ports.AcceptScanRequest true "Drafts to save"
// @Success 201 {object} ports.AcceptScanResponse
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /scan/accept [post]
func (h *ScanHandler) AcceptScan(c echo.Context) error {
	var req ports.AcceptScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.scannerService.AcceptScan(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Accept scan failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}
