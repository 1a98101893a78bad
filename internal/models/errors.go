package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable - файл датасета отсутствует или поврежден
	ErrDataUnavailable = errors.New("asset dataset unavailable")
	// ErrLookupFailed - идентификатор не является целым числом
	ErrLookupFailed = errors.New("manage number is not an integer")
	// ErrAssetNotFound - в датасете нет записи с таким идентификатором
	ErrAssetNotFound = errors.New("asset not found")
	// ErrValidationFailed - не заполнено обязательное поле формы
	ErrValidationFailed = errors.New("required field is missing")
	// ErrUnsupportedAttachment - вложение не PNG и не JPEG
	ErrUnsupportedAttachment = fmt.Errorf("%w: attachment must be a PNG or JPEG image", ErrValidationFailed)
	// ErrSend - ошибка SMTP (соединение, авторизация, отправка)
	ErrSend = errors.New("failed to send report email")
	// ErrRender - не удалось построить превью изображения
	ErrRender = errors.New("failed to render preview")
)
