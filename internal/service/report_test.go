package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/shenikar/sunshade_report_system/internal/mailer"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"github.com/shenikar/sunshade_report_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 7, 15, 9, 30, 0, 0, time.Local)

var testAsset = &models.Asset{
	ManageNumber: 100,
	Latitude:     37.40,
	Longitude:    126.70,
	SiteName:     "인천광역시 미추흘구 독정이로 95",
	Address:      "인천광역시 미추흘구 독정이로 95",
}

// newTestReportService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestReportService(t *testing.T) (service.ReportService, *mocks.MockAssetRepository, *mocks.MockNotifier) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAssetRepository(ctrl)
	notifierMock := mocks.NewMockNotifier(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := service.NewReportService(repoMock, notifierMock, logger, service.WithClock(func() time.Time {
		return fixedNow
	}))
	return svc, repoMock, notifierMock
}

func validForm() *models.ReportForm {
	return &models.ReportForm{
		Title:        "100번 그늘막 고장 신고",
		ManageNumber: "100",
		Location:     "인천광역시 미추흘구 독정이로 95",
		Description:  "그늘막 파손",
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestResolvePage_AssetFound(t *testing.T) {
	// Подготовка
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().FindByManageNumber(ctx, "100").Return(testAsset, nil).Times(1)

	// Действие
	page, err := svc.ResolvePage(ctx, "100")

	// Проверки
	require.NoError(t, err)
	assert.False(t, page.AssetMissing)
	assert.Equal(t, testAsset, page.Asset)
	require.NotNil(t, page.Map)
	require.Len(t, page.Map.Markers, 1)
	assert.Equal(t, 37.40, page.Map.Center.Lat)
	assert.Equal(t, 126.70, page.Map.Center.Lng)
	assert.Equal(t, "100번 그늘막 고장 신고", page.Defaults.Title)
	assert.Equal(t, "100", page.Defaults.ManageNumber)
	assert.Equal(t, testAsset.SiteName, page.Defaults.Location)
	assert.Equal(t, testAsset.Address, page.Defaults.Address)
	assert.Equal(t, service.DefaultDescription, page.Defaults.Description)
}

func TestResolvePage_AssetNotFound(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		FindByManageNumber(ctx, "9999").
		Return(nil, fmt.Errorf("%w: manage number 9999", models.ErrAssetNotFound)).
		Times(1)

	page, err := svc.ResolvePage(ctx, "9999")

	require.NoError(t, err)
	assert.True(t, page.AssetMissing)
	assert.Nil(t, page.Map)
	assert.Nil(t, page.Asset)
	assert.Equal(t, service.FallbackLocation, page.Defaults.Location)
	assert.Equal(t, "9999번 그늘막 고장 신고", page.Defaults.Title)
	assert.Empty(t, page.Defaults.Address)
}

func TestResolvePage_InvalidManageNumber(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		FindByManageNumber(ctx, "abc").
		Return(nil, fmt.Errorf("%w: \"abc\"", models.ErrLookupFailed)).
		Times(1)

	page, err := svc.ResolvePage(ctx, "abc")

	require.NoError(t, err)
	assert.True(t, page.AssetMissing)
	assert.Nil(t, page.Map)
}

func TestResolvePage_NoManageNumber(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().LoadAssets(ctx).Return([]models.Asset{*testAsset}, nil).Times(1)
	repoMock.EXPECT().FindByManageNumber(gomock.Any(), gomock.Any()).Times(0)

	page, err := svc.ResolvePage(ctx, "")

	require.NoError(t, err)
	assert.False(t, page.AssetMissing)
	assert.Nil(t, page.Map)
	assert.Empty(t, page.Defaults.Title)
	assert.Empty(t, page.Defaults.ManageNumber)
}

func TestResolvePage_DataUnavailable(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		FindByManageNumber(ctx, "100").
		Return(nil, fmt.Errorf("%w: open sunshade_location.xlsx", models.ErrDataUnavailable)).
		Times(1)

	page, err := svc.ResolvePage(ctx, "100")

	require.Error(t, err)
	assert.Nil(t, page)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestSubmitReport_Success(t *testing.T) {
	svc, repoMock, notifierMock := newTestReportService(t)
	ctx := context.Background()
	form := validForm()
	form.Attachment = &models.Attachment{Filename: "파손.png", Data: pngBytes(t)}

	expectedHTML, expectedText, err := mailer.RenderReport(mailer.ReportFields{
		Title:        form.Title,
		ManageNumber: form.ManageNumber,
		Location:     form.Location,
		Address:      testAsset.Address,
		Description:  form.Description,
	}, fixedNow)
	require.NoError(t, err)

	repoMock.EXPECT().FindByManageNumber(ctx, "100").Return(testAsset, nil).Times(1)
	notifierMock.EXPECT().
		Send(ctx, gomock.Any()).
		Do(func(_ context.Context, n *models.Notification) {
			assert.Equal(t, "[고장신고] 100번 그늘막 고장 신고", n.Subject)
			assert.Equal(t, expectedHTML, n.HTMLBody)
			assert.Equal(t, expectedText, n.TextBody)
			require.NotNil(t, n.Attachment)
			assert.Equal(t, "파손.png", n.Attachment.Filename)
			assert.Equal(t, "image/png", n.Attachment.ContentType)
		}).
		Return(nil).
		Times(1)

	result, err := svc.SubmitReport(ctx, form)

	require.NoError(t, err)
	assert.True(t, result.ShowBanner)
	assert.Equal(t, "100", result.ManageNumber)
	assert.Equal(t, fixedNow, result.SubmittedAt)
}

func TestSubmitReport_AddressNotTakenFromClient(t *testing.T) {
	svc, repoMock, notifierMock := newTestReportService(t)
	ctx := context.Background()
	form := validForm()
	form.ManageNumber = "9999"
	form.Address = "<forged>"

	repoMock.EXPECT().
		FindByManageNumber(ctx, "9999").
		Return(nil, models.ErrAssetNotFound).
		Times(1)
	notifierMock.EXPECT().
		Send(ctx, gomock.Any()).
		Do(func(_ context.Context, n *models.Notification) {
			assert.NotContains(t, n.HTMLBody, "forged")
		}).
		Return(nil).
		Times(1)

	_, err := svc.SubmitReport(ctx, form)

	require.NoError(t, err)
}

func TestSubmitReport_ValidationFailed(t *testing.T) {
	cases := map[string]func(f *models.ReportForm){
		"пустой идентификатор": func(f *models.ReportForm) { f.ManageNumber = "" },
		"пустое место":         func(f *models.ReportForm) { f.Location = "" },
		"пустое описание":      func(f *models.ReportForm) { f.Description = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repoMock, notifierMock := newTestReportService(t)
			form := validForm()
			mutate(form)

			// Ни справочник, ни отправка не вызываются
			repoMock.EXPECT().FindByManageNumber(gomock.Any(), gomock.Any()).Times(0)
			notifierMock.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

			result, err := svc.SubmitReport(context.Background(), form)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, models.ErrValidationFailed)
		})
	}
}

func TestSubmitReport_EmptyTitleAllowed(t *testing.T) {
	svc, repoMock, notifierMock := newTestReportService(t)
	ctx := context.Background()
	form := validForm()
	form.Title = ""

	repoMock.EXPECT().FindByManageNumber(ctx, "100").Return(testAsset, nil).Times(1)
	notifierMock.EXPECT().Send(ctx, gomock.Any()).Return(nil).Times(1)

	_, err := svc.SubmitReport(ctx, form)

	require.NoError(t, err)
}

func TestSubmitReport_UnsupportedAttachment(t *testing.T) {
	svc, _, notifierMock := newTestReportService(t)
	form := validForm()
	form.Attachment = &models.Attachment{Filename: "report.pdf", Data: []byte("%PDF-1.7")}

	notifierMock.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SubmitReport(context.Background(), form)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnsupportedAttachment)
	assert.ErrorIs(t, err, models.ErrValidationFailed)
}

func TestSubmitReport_SendError(t *testing.T) {
	svc, repoMock, notifierMock := newTestReportService(t)
	ctx := context.Background()
	authErr := fmt.Errorf("%w: 535 5.7.8 Username and Password not accepted", models.ErrSend)

	repoMock.EXPECT().FindByManageNumber(ctx, "100").Return(testAsset, nil).Times(1)
	notifierMock.EXPECT().Send(ctx, gomock.Any()).Return(authErr).Times(1)

	result, err := svc.SubmitReport(ctx, validForm())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrSend)
	assert.ErrorContains(t, err, "could not send report")
}

func TestSubmitReport_DatasetUnavailableStillSends(t *testing.T) {
	svc, repoMock, notifierMock := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		FindByManageNumber(ctx, "100").
		Return(nil, errors.Join(models.ErrDataUnavailable, errors.New("disk error"))).
		Times(1)
	notifierMock.EXPECT().Send(ctx, gomock.Any()).Return(nil).Times(1)

	result, err := svc.SubmitReport(ctx, validForm())

	require.NoError(t, err)
	assert.True(t, result.ShowBanner)
}
