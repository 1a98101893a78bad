package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/sunshade_report_system/internal/config"
	"github.com/shenikar/sunshade_report_system/internal/imaging"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Тексты, которые видит пользователь
const (
	msgRequiredFields    = "⚠️ 필수 항목(*)을 모두 입력해주세요!"
	msgUnsupportedImage  = "⚠️ PNG 또는 JPG 이미지만 첨부할 수 있습니다."
	msgImageTooLarge     = "⚠️ 첨부 파일이 너무 큽니다."
	msgSendFailed        = "❌ 메일 전송에 실패했습니다. 다시 시도해주세요."
	msgAssetMissing      = "해당 관리번호의 그늘막 정보가 없습니다."
	msgMapUnavailable    = "지도를 표시할 수 없습니다."
	msgPreviewFailed     = "이미지를 미리보기할 수 없습니다."
	msgDataUnavailable   = "그늘막 정보를 불러올 수 없습니다. 잠시 후 다시 시도해주세요."
	msgBannerTitle       = "✅ 정상처리 되었습니다!"
	msgBannerAcceptedFmt = "✅ %s번 신고가 접수되었습니다!"
)

// bannerDuration - через сколько миллисекунд баннер убирается со страницы
const bannerDuration = 5000

// multipartOverhead - запас на текстовые поля сверх лимита на файл
const multipartOverhead = 1 << 20

var errImageTooLarge = errors.New("attachment exceeds upload limit")

// Templates возвращает шаблоны страниц для router.SetHTMLTemplate
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

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

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.showForm)
	r.POST("/", h.submitForm)
}

// pageData - все, что нужно шаблону index.tmpl для одного ответа
type pageData struct {
	ManageNumber   string
	AssetWarning   string
	MapJSON        template.JS
	MapError       string
	Form           models.ReportForm
	Warning        string
	Error          string
	Preview        template.URL
	PreviewError   string
	ShowBanner     bool
	BannerTitle    string
	BannerMessage  string
	BannerDuration int
}

// resolveManageNumber - идентификатор из QR-ссылки, без нормализации
func resolveManageNumber(c *gin.Context) string {
	return c.Query("value")
}

func (h *Handler) showForm(c *gin.Context) {
	log := h.logger.WithField("method", "showForm")

	page, err := h.reportService.ResolvePage(c.Request.Context(), resolveManageNumber(c))
	if err != nil {
		log.WithError(err).Error("Failed to resolve page")
		h.renderError(c, err)
		return
	}

	data := newPageData(page, log)
	data.Form = page.Defaults
	c.HTML(http.StatusOK, "index.tmpl", data)
}

func (h *Handler) submitForm(c *gin.Context) {
	manageNumber := resolveManageNumber(c)
	log := h.logger.WithField("method", "submitForm").WithField("manage_number", manageNumber)

	page, err := h.reportService.ResolvePage(c.Request.Context(), manageNumber)
	switch {
	case errors.Is(err, models.ErrDataUnavailable):
		// Заявку все равно можно отправить, просто без карты и адреса
		log.WithError(err).Warn("Asset dataset unavailable, submitting without map")
		page = &service.ReportPage{ManageNumber: manageNumber}
	case err != nil:
		log.WithError(err).Error("Failed to resolve page")
		h.renderError(c, err)
		return
	}

	data := newPageData(page, log)
	form, err := h.readForm(c, manageNumber)
	data.Form = *form
	data.Form.Attachment = nil
	if err != nil {
		log.WithError(err).Warn("Failed to read uploaded image")
		status := http.StatusBadRequest
		data.Warning = msgUnsupportedImage
		if errors.Is(err, errImageTooLarge) {
			status = http.StatusRequestEntityTooLarge
			data.Warning = msgImageTooLarge
		}
		c.HTML(status, "index.tmpl", data)
		return
	}

	if form.Attachment != nil {
		preview, err := imaging.Thumbnail(form.Attachment.Data)
		if err != nil {
			log.WithError(err).Warn("Failed to build image preview")
			data.PreviewError = msgPreviewFailed
		} else {
			data.Preview = template.URL(preview)
		}
	}

	result, err := h.reportService.SubmitReport(c.Request.Context(), form)
	switch {
	case err == nil:
		log.WithField("report_id", result.ReportID).Info("Report accepted")
		data.ShowBanner = result.ShowBanner
		data.BannerMessage = fmt.Sprintf(msgBannerAcceptedFmt, result.ManageNumber)
	case errors.Is(err, models.ErrUnsupportedAttachment):
		data.Warning = msgUnsupportedImage
		data.Preview = ""
		data.PreviewError = ""
		c.HTML(http.StatusUnprocessableEntity, "index.tmpl", data)
		return
	case errors.Is(err, models.ErrValidationFailed):
		data.Warning = msgRequiredFields
		c.HTML(http.StatusUnprocessableEntity, "index.tmpl", data)
		return
	default:
		log.WithError(err).Error("Failed to submit report")
		data.Error = msgSendFailed
		c.HTML(http.StatusBadGateway, "index.tmpl", data)
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", data)
}

// readForm собирает форму из multipart-запроса. Идентификатор берется из ссылки, адрес не читается вовсе.
func (h *Handler) readForm(c *gin.Context, manageNumber string) (*models.ReportForm, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+multipartOverhead)
	parseErr := c.Request.ParseMultipartForm(h.cfg.MaxUploadBytes)

	form := &models.ReportForm{
		Title:        c.PostForm("title"),
		ManageNumber: manageNumber,
		Location:     c.PostForm("location"),
		Description:  c.PostForm("description"),
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(parseErr, &maxBytesErr) {
		return form, errImageTooLarge
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Файл не приложен
		return form, nil
	}
	if fileHeader.Size > h.cfg.MaxUploadBytes {
		return form, errImageTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return form, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form, err
	}
	if len(data) == 0 {
		return form, nil
	}

	form.Attachment = &models.Attachment{
		Filename: fileHeader.Filename,
		Data:     data,
	}
	return form, nil
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, models.ErrDataUnavailable) {
		status = http.StatusServiceUnavailable
	}
	c.HTML(status, "error.tmpl", gin.H{"Message": msgDataUnavailable})
}

func newPageData(page *service.ReportPage, log *logrus.Entry) pageData {
	data := pageData{
		ManageNumber:   page.ManageNumber,
		BannerTitle:    msgBannerTitle,
		BannerDuration: bannerDuration,
	}

	if page.AssetMissing {
		data.AssetWarning = msgAssetMissing
	}
	if page.MapError != nil {
		data.MapError = msgMapUnavailable
	}
	if page.Map != nil {
		raw, err := json.Marshal(page.Map)
		if err != nil {
			log.WithError(err).Warn("Failed to encode map view")
			data.MapError = msgMapUnavailable
		} else {
			data.MapJSON = template.JS(raw)
		}
	}
	return data
}
