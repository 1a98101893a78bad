package v1

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/sunshade_report_system/internal/mapview"
)

// AssetDTO DTO записи справочника навесов
// @Description DTO записи справочника навесов
type AssetDTO struct {
	ManageNumber int     `json:"manage_number"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	SiteName     string  `json:"site_name"`
	Address      string  `json:"address"`
}

// FormDefaultsDTO значения формы заявки по умолчанию
// @Description значения формы заявки по умолчанию
type FormDefaultsDTO struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// AssetResponse DTO для ответа с точкой на карте
// @Description DTO для ответа с точкой на карте
type AssetResponse struct {
	Asset    AssetDTO         `json:"asset"`
	Map      *mapview.MapView `json:"map"`
	Defaults FormDefaultsDTO  `json:"defaults"`
}

// CreateReportRequest DTO для подачи заявки (multipart/form-data)
type CreateReportRequest struct {
	ManageNumber string                `form:"manage_number"`
	Title        string                `form:"title"`
	Location     string                `form:"location"`
	Description  string                `form:"description"`
	Image        *multipart.FileHeader `form:"image" swaggerignore:"true"`
}

// ReportResponse DTO для ответа о принятой заявке
// @Description DTO для ответа о принятой заявке
type ReportResponse struct {
	ReportID    uuid.UUID `json:"report_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}
