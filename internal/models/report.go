package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportForm - данные формы подачи заявки о поломке. Живет только в рамках одного запроса.
type ReportForm struct {
	Title        string
	ManageNumber string `validate:"required"`
	Location     string `validate:"required"`
	Description  string `validate:"required"`
	Address      string
	Attachment   *Attachment
}

// Attachment - загруженное пользователем изображение
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Notification - готовое к отправке письмо
type Notification struct {
	ReportID   uuid.UUID
	Subject    string
	HTMLBody   string
	TextBody   string
	Attachment *Attachment
}

// SubmitResult - результат успешной отправки заявки.
// ShowBanner передается в рендер того же ответа, глобального флага нет.
type SubmitResult struct {
	ReportID     uuid.UUID
	ManageNumber string
	SubmittedAt  time.Time
	ShowBanner   bool
}
