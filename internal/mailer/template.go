package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// TimestampLayout - формат времени приема заявки в письме
const TimestampLayout = "2006-01-02 15:04:05"

const subjectPrefix = "[고장신고] "

// ReportFields - поля заявки, которые попадают в письмо, в порядке вывода
type ReportFields struct {
	Title        string
	ManageNumber string
	Location     string
	Address      string
	Description  string
}

type row struct {
	Label string
	Value string
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
    <body>
        <h2 style="color: #d9534f; border-bottom: 2px solid #ddd; padding-bottom: 10px;">🚨 신고 접수 내용</h2>
        <table border="1" cellpadding="10" cellspacing="0" style="border-collapse: collapse; width: 100%; max-width: 600px; font-family: Arial, sans-serif; border: 1px solid #ddd;">
            {{- range .}}
            <tr><td style="border: 1px solid #ddd; padding: 10px;"><strong>{{.Label}}</strong></td><td style="border: 1px solid #ddd; padding: 10px;">{{.Value}}</td></tr>
            {{- end}}
        </table>
        <p style="margin-top: 20px; font-size: 12px; color: #777; border-top: 1px solid #eee; padding-top: 10px;">
            ※ 이 메일은 그늘막 고장 신고 시스템에서 자동으로 발송되었습니다.
        </p>
    </body>
</html>
`))

// Subject формирует тему письма
func Subject(title string) string {
	return subjectPrefix + title
}

// RenderReport собирает HTML и текстовую версии письма.
// При одинаковых полях и времени результат побайтно совпадает.
func RenderReport(fields ReportFields, submittedAt time.Time) (htmlBody, textBody string, err error) {
	rows := reportRows(fields, submittedAt)

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, rows); err != nil {
		return "", "", fmt.Errorf("failed to render report email: %w", err)
	}

	var text strings.Builder
	text.WriteString("🚨 신고 접수 내용 🚨\n")
	for _, r := range rows {
		fmt.Fprintf(&text, "► %s: %s\n", r.Label, r.Value)
	}
	return sb.String(), text.String(), nil
}

func reportRows(fields ReportFields, submittedAt time.Time) []row {
	return []row{
		{Label: "제목", Value: fields.Title},
		{Label: "관리번호", Value: fields.ManageNumber},
		{Label: "위치", Value: fields.Location},
		{Label: "주소", Value: fields.Address},
		{Label: "고장 내용", Value: fields.Description},
		{Label: "접수 시간", Value: submittedAt.Format(TimestampLayout)},
	}
}
