package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crystalseed-scanner/internal/service"
)

type ScanHandler struct {
	scanService service.ScanService
	logger      echo.Logger
}

func NewScanHandler(scanService service.ScanService, logger echo.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// RunScan executes one scheduled triage run and returns its summary. An
// aborted run still surfaces whatever trace log was accumulated.
func (h *ScanHandler) RunScan(c echo.Context) error {
	summary, err := h.scanService.Scan(c.Request().Context())
	if err != nil {
		h.logger.Error("Scan run failed:", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": err.Error(),
			"log":   summary.Log,
		})
	}
	return c.JSON(http.StatusOK, summary)
}
