package mailer

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shenikar/sunshade_report_system/internal/config"
	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

const reportIDHeader mail.Header = "X-Report-ID"

// SMTPNotifier отправляет письмо через SMTP с неявным TLS.
// На каждый вызов открывается отдельная сессия: подключение, авторизация, отправка, закрытие.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	receiver string
	timeout  time.Duration
	logger   *logrus.Logger
}

func NewSMTPNotifier(cfg *config.Config, logger *logrus.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SenderAddress,
		password: cfg.SenderSecret,
		receiver: cfg.ReceiverAddress,
		timeout:  cfg.SMTPTimeout,
		logger:   logger,
	}
}

// Send отправляет письмо. Повторов нет: при ошибке возвращается ErrSend с причиной.
func (n *SMTPNotifier) Send(ctx context.Context, notification *models.Notification) error {
	log := n.logger.WithFields(logrus.Fields{
		"component": "smtp",
		"report_id": notification.ReportID,
		"relay":     fmt.Sprintf("%s:%d", n.host, n.port),
	})

	msg, err := n.buildMessage(notification)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrSend, err)
	}

	client, err := mail.NewClient(n.host,
		mail.WithSSL(),
		mail.WithPort(n.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.username),
		mail.WithPassword(n.password),
		mail.WithTimeout(n.timeout),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to create smtp client: %w", models.ErrSend, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	log.Debug("Sending report email")
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", models.ErrSend, err)
	}
	log.Info("Report email sent")
	return nil
}

func (n *SMTPNotifier) buildMessage(notification *models.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.username); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.receiver); err != nil {
		return nil, fmt.Errorf("invalid receiver address: %w", err)
	}
	msg.Subject(notification.Subject)
	msg.SetDate()
	msg.SetGenHeader(reportIDHeader, notification.ReportID.String())

	if notification.TextBody != "" {
		msg.SetBodyString(mail.TypeTextPlain, notification.TextBody)
		msg.AddAlternativeString(mail.TypeTextHTML, notification.HTMLBody)
	} else {
		msg.SetBodyString(mail.TypeTextHTML, notification.HTMLBody)
	}

	if a := notification.Attachment; a != nil {
		// имя файла берется из загрузки как есть
		err := msg.AttachReader(a.Filename, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("failed to attach %q: %w", a.Filename, err)
		}
	}
	return msg, nil
}
