package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// SubmissionsTotal считает поданные заявки по результату: sent, validation_failed, send_failed
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sunshade_report",
		Name:      "submissions_total",
		Help:      "Total number of report submissions, labeled by result.",
	}, []string{"result"})

	// AssetLookupsTotal считает поиски по справочнику: found, not_found, invalid, absent
	AssetLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sunshade_report",
		Name:      "asset_lookups_total",
		Help:      "Total number of asset lookups by manage number, labeled by result.",
	}, []string{"result"})

	MailSendDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sunshade_report",
		Name:      "mail_send_duration_seconds",
		Help:      "Time spent in a single SMTP session (dial, auth, send, close).",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
)

// Register регистрирует метрики в глобальном реестре один раз
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			SubmissionsTotal,
			AssetLookupsTotal,
			MailSendDurationSeconds,
		)
	})
}
