package v1

import (
	"io"

	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
)

// PageToAssetResponse преобразует страницу с найденной записью в DTO для ответа
func PageToAssetResponse(page *service.ReportPage) *AssetResponse {
	return &AssetResponse{
		Asset: AssetDTO{
			ManageNumber: page.Asset.ManageNumber,
			Latitude:     page.Asset.Latitude,
			Longitude:    page.Asset.Longitude,
			SiteName:     page.Asset.SiteName,
			Address:      page.Asset.Address,
		},
		Map: page.Map,
		Defaults: FormDefaultsDTO{
			Title:       page.Defaults.Title,
			Location:    page.Defaults.Location,
			Description: page.Defaults.Description,
		},
	}
}

// DTOToReportForm преобразует запрос в форму заявки. Пустой файл считается отсутствующим.
func DTOToReportForm(dto CreateReportRequest) (*models.ReportForm, error) {
	form := &models.ReportForm{
		Title:        dto.Title,
		ManageNumber: dto.ManageNumber,
		Location:     dto.Location,
		Description:  dto.Description,
	}
	if dto.Image == nil || dto.Image.Size == 0 {
		return form, nil
	}

	file, err := dto.Image.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	form.Attachment = &models.Attachment{
		Filename: dto.Image.Filename,
		Data:     data,
	}
	return form, nil
}

// ResultToReportResponse преобразует результат отправки в DTO для ответа
func ResultToReportResponse(result *models.SubmitResult) *ReportResponse {
	return &ReportResponse{
		ReportID:    result.ReportID,
		SubmittedAt: result.SubmittedAt,
	}
}
