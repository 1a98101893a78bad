package service_test

import (
	"testing"

	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestValidateForm(t *testing.T) {
	assert.NoError(t, service.ValidateForm(validForm()))

	// пробелы считаются заполненным значением
	form := validForm()
	form.Location = " "
	assert.NoError(t, service.ValidateForm(form))

	assert.ErrorIs(t, service.ValidateForm(&models.ReportForm{}), models.ErrValidationFailed)
}
