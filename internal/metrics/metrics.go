// Package metrics содержит Prometheus метрики HTTP API и загруженного набора данных.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "f1_dnf"

// Metrics - набор метрик сервиса. Регистрируется в переданном реестре,
// поэтому тесты могут использовать собственный prometheus.Registry.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge

	DatasetRecords    prometheus.Gauge
	DatasetGrandPrix  prometheus.Gauge
	DatasetLoadedTime prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New регистрирует метрики в reg. Если reg также реализует Gatherer,
// Handler отдает именно его содержимое.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Duration of API requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "api_requests_in_flight",
				Help:      "Current number of API requests being served",
			},
		),
		DatasetRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_records",
				Help:      "Number of race result records in the loaded snapshot",
			},
		),
		DatasetGrandPrix: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_grand_prix",
				Help:      "Number of distinct Grand Prix in the race count lookup",
			},
		),
		DatasetLoadedTime: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_loaded_timestamp_seconds",
				Help:      "Unix time the snapshot was loaded",
			},
		),
		gatherer: prometheus.DefaultGatherer,
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// RecordAPIRequest учитывает завершенный запрос
func (m *Metrics) RecordAPIRequest(method, route string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackInFlight увеличивает или уменьшает число активных запросов
func (m *Metrics) TrackInFlight(inc bool) {
	if inc {
		m.InFlight.Inc()
		return
	}
	m.InFlight.Dec()
}

// SetDataset публикует размер загруженного снимка
func (m *Metrics) SetDataset(records, grandPrix int, loadedAt time.Time) {
	m.DatasetRecords.Set(float64(records))
	m.DatasetGrandPrix.Set(float64(grandPrix))
	if !loadedAt.IsZero() {
		m.DatasetLoadedTime.Set(float64(loadedAt.Unix()))
	}
}

// Handler возвращает обработчик /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
