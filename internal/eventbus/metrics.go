package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - Prometheus-счетчики шины. Подключаются явно через
// Bus.AttachMetrics, чтобы тесты не трогали глобальный регистр.
type Metrics struct {
	emitted   prometheus.Counter
	delivered prometheus.Counter
	faults    prometheus.Counter
}

// NewMetrics создает и регистрирует счетчики в глобальном регистре.
func NewMetrics() *Metrics {
	m := &Metrics{
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "events_emitted_total",
			Help:      "Общее число излученных событий.",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "events_delivered_total",
			Help:      "Общее число доставок подписчикам.",
		}),
		faults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "listener_faults_total",
			Help:      "Паники подписчиков, изолированные шиной.",
		}),
	}
	prometheus.MustRegister(m.emitted, m.delivered, m.faults)
	return m
}
