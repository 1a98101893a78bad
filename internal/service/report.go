package service

//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/sunshade_report_system/internal/mailer"
	"github.com/shenikar/sunshade_report_system/internal/mapview"
	"github.com/shenikar/sunshade_report_system/internal/metrics"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// FallbackLocation подставляется в форму, если запись справочника не найдена
	FallbackLocation   = "인천광역시 미추흘구 독정이로 95"
	DefaultDescription = "그늘막 파손"
)

// AssetRepository определяет контракт доступа к справочнику навесов
type AssetRepository interface {
	LoadAssets(ctx context.Context) ([]models.Asset, error)
	FindByManageNumber(ctx context.Context, manageNumber string) (*models.Asset, error)
}

// Notifier определяет контракт отправки уведомления
type Notifier interface {
	Send(ctx context.Context, notification *models.Notification) error
}

// ReportService определяет контракт бизнес-логики страницы заявки
type ReportService interface {
	ResolvePage(ctx context.Context, manageNumber string) (*ReportPage, error)
	SubmitReport(ctx context.Context, form *models.ReportForm) (*models.SubmitResult, error)
}

// ReportPage - данные для рендера страницы по одному идентификатору.
// Запись справочника разрешается один раз и используется и картой, и формой.
type ReportPage struct {
	ManageNumber string
	Asset        *models.Asset
	Map          *mapview.MapView
	// MapError - ошибка построения карты, остальная страница работает
	MapError error
	// AssetMissing выставляется, когда идентификатор передан, но запись не найдена
	AssetMissing bool
	Defaults     models.ReportForm
}

type reportService struct {
	repo     AssetRepository
	notifier Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

// Option настраивает сервис
type Option func(*reportService)

// WithClock подменяет часы, по которым проставляется время приема заявки
func WithClock(now func() time.Time) Option {
	return func(s *reportService) {
		s.now = now
	}
}

func NewReportService(repo AssetRepository, notifier Notifier, logger *logrus.Logger, opts ...Option) ReportService {
	s := &reportService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolvePage загружает справочник, ищет запись и готовит значения формы по умолчанию
func (s *reportService) ResolvePage(ctx context.Context, manageNumber string) (*ReportPage, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "report",
		"method":        "ResolvePage",
		"manage_number": manageNumber,
	})

	page := &ReportPage{
		ManageNumber: manageNumber,
		Defaults: models.ReportForm{
			ManageNumber: manageNumber,
			Location:     FallbackLocation,
			Description:  DefaultDescription,
		},
	}

	if manageNumber == "" {
		if _, err := s.repo.LoadAssets(ctx); err != nil {
			log.WithError(err).Error("Failed to load asset dataset")
			return nil, fmt.Errorf("service: could not load assets: %w", err)
		}
		metrics.AssetLookupsTotal.WithLabelValues("absent").Inc()
		return page, nil
	}

	page.Defaults.Title = DefaultTitle(manageNumber)

	asset, err := s.repo.FindByManageNumber(ctx, manageNumber)
	switch {
	case err == nil:
		metrics.AssetLookupsTotal.WithLabelValues("found").Inc()
	case errors.Is(err, models.ErrLookupFailed):
		metrics.AssetLookupsTotal.WithLabelValues("invalid").Inc()
		log.WithError(err).Debug("Manage number is not an integer")
		page.AssetMissing = true
		return page, nil
	case errors.Is(err, models.ErrAssetNotFound):
		metrics.AssetLookupsTotal.WithLabelValues("not_found").Inc()
		log.Info("No asset for manage number")
		page.AssetMissing = true
		return page, nil
	default:
		log.WithError(err).Error("Failed to load asset dataset")
		return nil, fmt.Errorf("service: could not load assets: %w", err)
	}

	page.Asset = asset
	page.Defaults.Location = asset.SiteName
	page.Defaults.Address = asset.Address

	view, err := mapview.Build(*asset)
	if err != nil {
		log.WithError(err).Warn("Failed to build map view")
		page.MapError = err
	}
	page.Map = view

	log.Info("Asset resolved")
	return page, nil
}

// SubmitReport проверяет форму и отправляет письмо. Повторных попыток нет.
func (s *reportService) SubmitReport(ctx context.Context, form *models.ReportForm) (*models.SubmitResult, error) {
	reportID := uuid.New()
	log := s.logger.WithFields(logrus.Fields{
		"service":       "report",
		"method":        "SubmitReport",
		"report_id":     reportID,
		"manage_number": form.ManageNumber,
	})
	log.Info("Attempting to submit a report")

	if err := ValidateForm(form); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("validation_failed").Inc()
		log.WithError(err).Warn("Report validation failed")
		return nil, err
	}

	// Адрес всегда берется из справочника, а не из запроса
	address := ""
	asset, err := s.repo.FindByManageNumber(ctx, form.ManageNumber)
	switch {
	case err == nil:
		address = asset.Address
	case errors.Is(err, models.ErrDataUnavailable):
		log.WithError(err).Warn("Asset dataset unavailable, sending report without address")
	default:
		log.WithError(err).Debug("No asset for submitted manage number")
	}

	submittedAt := s.now()
	htmlBody, textBody, err := mailer.RenderReport(mailer.ReportFields{
		Title:        form.Title,
		ManageNumber: form.ManageNumber,
		Location:     form.Location,
		Address:      address,
		Description:  form.Description,
	}, submittedAt)
	if err != nil {
		log.WithError(err).Error("Failed to render report email")
		return nil, fmt.Errorf("service: could not render report: %w", err)
	}

	notification := &models.Notification{
		ReportID:   reportID,
		Subject:    mailer.Subject(form.Title),
		HTMLBody:   htmlBody,
		TextBody:   textBody,
		Attachment: form.Attachment,
	}

	start := time.Now()
	err = s.notifier.Send(ctx, notification)
	metrics.MailSendDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("send_failed").Inc()
		log.WithError(err).Error("Failed to send report email")
		return nil, fmt.Errorf("service: could not send report: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("sent").Inc()
	log.Info("Report submitted successfully")
	return &models.SubmitResult{
		ReportID:     reportID,
		ManageNumber: form.ManageNumber,
		SubmittedAt:  submittedAt,
		ShowBanner:   true,
	}, nil
}

// DefaultTitle - заголовок заявки по умолчанию
func DefaultTitle(manageNumber string) string {
	if manageNumber == "" {
		return ""
	}
	return fmt.Sprintf("%s번 그늘막 고장 신고", manageNumber)
}
