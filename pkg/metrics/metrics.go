package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of check requests fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of check requests processed (any verdict)",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of check requests failed to process",
		},
		[]string{"topic"},
	)
)

var (
	// VatValidations — итоговые вердикты проверок.
	VatValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vat_validations_total",
			Help: "VAT number validations by country and result",
		},
		[]string{"country", "result"}, // valid|invalid_format|invalid|fault
	)
	RegistryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vat_registry_requests_total",
			Help: "VAT registry requests by country and outcome",
		},
		[]string{"country", "outcome"}, // confirmed|rejected|timeout|fault
	)
	RegistryLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vat_registry_request_duration_seconds",
			Help:    "VAT registry request latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 30},
		},
		[]string{"country"},
	)
)

var (
	// HTTPRequests — ответы HTTP API по шаблону маршрута и классу статуса.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP responses by route, method and status class",
		},
		[]string{"route", "method", "status"}, // status: 2xx|4xx|5xx
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в дефолтном реестре; повторные вызовы ничего не делают.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			VatValidations, RegistryRequests, RegistryLatency,
			HTTPRequests, HTTPDuration,
		)
	})
}
