package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/sunshade_report_system/internal/config"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"github.com/sirupsen/logrus"
)

// multipartOverhead - запас на текстовые поля сверх лимита на файл
const multipartOverhead = 1 << 20

type Handler struct {
	reportService service.ReportService
	logger        *logrus.Logger
	cfg           *config.Config
}

func NewHandler(reportService service.ReportService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService: reportService,
		logger:        logger,
		cfg:           cfg,
	}
}

// @Summary Get sunshade by manage number
// @Description Look up a sunshade in the dataset and return its map view and form defaults.
// @Tags Assets
// @Produce json
// @Param manage_number path string true "Manage number (관리번호)"
// @Success 200 {object} AssetResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 503 {object} map[string]string "Dataset unavailable"
// @Router /assets/{manage_number} [get]
func (h *Handler) getAsset(c *gin.Context) {
	manageNumber := c.Param("manage_number")
	log := h.logger.WithField("method", "getAsset").WithField("manage_number", manageNumber)

	page, err := h.reportService.ResolvePage(c.Request.Context(), manageNumber)
	if err != nil {
		log.WithError(err).Error("Failed to resolve asset from service")
		respondError(c, err)
		return
	}
	if page.AssetMissing || page.Asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.JSON(http.StatusOK, PageToAssetResponse(page))
}

// @Summary Submit a fault report
// @Description Validate the report and send it to the maintenance team by email. The image must be PNG or JPEG.
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param manage_number formData string true "Manage number (관리번호)"
// @Param title formData string false "Title"
// @Param location formData string true "Location"
// @Param description formData string true "Fault description"
// @Param image formData file false "Photo (PNG/JPEG)"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Required field missing or unsupported image"
// @Failure 413 {object} map[string]string "Image too large"
// @Failure 502 {object} map[string]string "Mail delivery failed"
// @Failure 503 {object} map[string]string "Dataset unavailable"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

	// Тело ограничивается до разбора, чтобы большой файл не дочитывался целиком
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+multipartOverhead)

	if err := c.ShouldBind(&input); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			log.WithError(err).Warn("Request body exceeds upload limit")
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
			return
		}
		log.WithError(err).Warn("Failed to bind form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if input.Image != nil && input.Image.Size > h.cfg.MaxUploadBytes {
		log.WithField("size", input.Image.Size).Warn("Image exceeds upload limit")
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	form, err := DTOToReportForm(input)
	if err != nil {
		log.WithError(err).Warn("Failed to read image")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
		return
	}

	result, err := h.reportService.SubmitReport(c.Request.Context(), form)
	if err != nil {
		log.WithError(err).Error("Failed to submit report in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ResultToReportResponse(result))
}

// @Summary Health check
// @Description Check if the service is running.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError сопоставляет доменные ошибки с HTTP-статусами
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnsupportedAttachment):
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be PNG or JPEG"})
	case errors.Is(err, models.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "required fields are missing"})
	case errors.Is(err, models.ErrSend):
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send report"})
	case errors.Is(err, models.ErrDataUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
