package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics собирает метрики Prometheus для сервиса
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	directRepliesTotal  *prometheus.CounterVec
	botUp               prometheus.Gauge
}

// New регистрирует коллекторы в реестре по умолчанию
func New(service string) *Metrics {
	return &Metrics{
		service: service,
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество обработанных HTTP запросов",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP запросов",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		directRepliesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_direct_replies_total",
			Help: "Количество автоответов, отправленных диспетчером",
		}, []string{"service", "status"}),
		botUp: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "bot_api_up",
			Help:        "Доступность Telegram Bot API по результату последней проверки",
			ConstLabels: prometheus.Labels{"service": service},
		}),
	}
}

// ObserveHTTPRequest учитывает один обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// IncDirectReply учитывает успешно отправленный автоответ
func (m *Metrics) IncDirectReply() {
	m.directRepliesTotal.WithLabelValues(m.service, "ok").Inc()
}

// IncDirectReplyError учитывает неудачную попытку автоответа
func (m *Metrics) IncDirectReplyError() {
	m.directRepliesTotal.WithLabelValues(m.service, "error").Inc()
}

// SetBotUp выставляет результат последней проверки доступности Bot API
func (m *Metrics) SetBotUp(up bool) {
	if up {
		m.botUp.Set(1)
		return
	}
	m.botUp.Set(0)
}
