package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/sunshade_report_system/internal/config"
	"github.com/shenikar/sunshade_report_system/internal/mapview"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"github.com/shenikar/sunshade_report_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockReportService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockReportService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		MaxUploadBytes: 64,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartBody собирает тело multipart/form-data и возвращает его вместе с заголовком Content-Type
func multipartBody(fields map[string]string, filename string, data []byte) (*bytes.Buffer, map[string]string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if filename != "" {
		part, _ := writer.CreateFormFile("image", filename)
		_, _ = part.Write(data)
	}
	_ = writer.Close()
	return body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

func reportFields() map[string]string {
	return map[string]string{
		"manage_number": "100",
		"title":         "100번 그늘막 고장 신고",
		"location":      "인천광역시 미추흘구 독정이로 95",
		"description":   "그늘막 파손",
	}
}

func foundPage(t *testing.T) *service.ReportPage {
	asset := &models.Asset{
		ManageNumber: 100,
		Latitude:     37.40,
		Longitude:    126.70,
		SiteName:     "인천광역시 미추흘구 독정이로 95",
		Address:      "인천광역시 미추흘구 독정이로 95",
	}
	view, err := mapview.Build(*asset)
	require.NoError(t, err)
	return &service.ReportPage{
		ManageNumber: "100",
		Asset:        asset,
		Map:          view,
		Defaults: models.ReportForm{
			Title:       "100번 그늘막 고장 신고",
			Location:    asset.SiteName,
			Address:     asset.Address,
			Description: service.DefaultDescription,
		},
	}
}

func TestGetAsset_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ResolvePage(gomock.Any(), "100").Return(foundPage(t), nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/assets/100", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AssetResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Asset.ManageNumber)
	assert.Equal(t, 37.40, resp.Asset.Latitude)
	assert.Equal(t, 126.70, resp.Asset.Longitude)
	require.NotNil(t, resp.Map)
	assert.Equal(t, mapview.DefaultZoom, resp.Map.Zoom)
	require.Len(t, resp.Map.Markers, 1)
	assert.Equal(t, "<b>관리번호:</b> 100<br>", resp.Map.Markers[0].TooltipHTML)
	assert.Equal(t, "그늘막 파손", resp.Defaults.Description)
}

func TestGetAsset_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ResolvePage(gomock.Any(), "9999").
		Return(&service.ReportPage{ManageNumber: "9999", AssetMissing: true}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/assets/9999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "asset not found")
}

func TestGetAsset_DataUnavailable(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ResolvePage(gomock.Any(), "100").
		Return(nil, fmt.Errorf("service: could not load assets: %w", models.ErrDataUnavailable)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/assets/100", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "dataset unavailable")
}

func TestCreateReport_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reportID := uuid.New()
	submittedAt := time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, form *models.ReportForm) (*models.SubmitResult, error) {
			assert.Equal(t, "100", form.ManageNumber)
			assert.Equal(t, "그늘막 파손", form.Description)
			require.NotNil(t, form.Attachment)
			assert.Equal(t, "photo.jpg", form.Attachment.Filename)
			assert.Equal(t, []byte("jpeg-bytes"), form.Attachment.Data)
			return &models.SubmitResult{ReportID: reportID, ManageNumber: "100", SubmittedAt: submittedAt, ShowBanner: true}, nil
		}).Times(1)

	body, headers := multipartBody(reportFields(), "photo.jpg", []byte("jpeg-bytes"))
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp ReportResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reportID, resp.ReportID)
	assert.True(t, submittedAt.Equal(resp.SubmittedAt))
}

func TestCreateReport_WithoutImage(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, form *models.ReportForm) (*models.SubmitResult, error) {
			assert.Nil(t, form.Attachment)
			return &models.SubmitResult{ReportID: uuid.New(), ShowBanner: true}, nil
		}).Times(1)

	body, headers := multipartBody(reportFields(), "", nil)
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReport_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: Description required", models.ErrValidationFailed)).
		Times(1)

	fields := reportFields()
	delete(fields, "description")
	body, headers := multipartBody(fields, "", nil)
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "required fields are missing")
}

func TestCreateReport_UnsupportedImage(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		Return(nil, models.ErrUnsupportedAttachment).
		Times(1)

	body, headers := multipartBody(reportFields(), "report.pdf", []byte("%PDF-1.7"))
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PNG or JPEG")
}

func TestCreateReport_ImageTooLarge(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	body, headers := multipartBody(reportFields(), "big.png", make([]byte, 128))
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCreateReport_SendError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: could not send report: %w", models.ErrSend)).
		Times(1)

	body, headers := multipartBody(reportFields(), "", nil)
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "failed to send report")
}

func TestCreateReport_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: could not render report: %w", models.ErrRender)).
		Times(1)

	body, headers := multipartBody(reportFields(), "", nil)
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateReport_BodyTooLarge(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	// Тело больше лимита на файл вместе с запасом на поля
	body, headers := multipartBody(reportFields(), "huge.png", make([]byte, multipartOverhead+1024))
	w := makeRequest(router, "POST", "/api/v1/reports", body, headers)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "image too large")
}
