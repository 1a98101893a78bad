package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shenikar/sunshade_report_system/internal/imaging"
	"github.com/shenikar/sunshade_report_system/internal/models"
)

var validate = validator.New()

// ValidateForm проверяет обязательные поля (관리번호, 위치, 고장내용) и тип вложения.
// Ошибка одна на всю форму, без детализации по полям.
func ValidateForm(form *models.ReportForm) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}

	if form.Attachment != nil {
		contentType, err := imaging.DetectType(form.Attachment.Data)
		if err != nil {
			return err
		}
		form.Attachment.ContentType = contentType
	}
	return nil
}
