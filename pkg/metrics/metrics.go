// Package metrics expõe as métricas Prometheus da API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "billing"

// Metrics agrupa os coletores da aplicação
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	renders      *prometheus.CounterVec
	feedDropped  prometheus.Counter
	feedClients  prometheus.Gauge
	staleServed  prometheus.Counter
}

// New cria as métricas em um registry próprio, com os coletores de processo e Go
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP por rota e status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "Documentos de fatura gerados por formato e resultado.",
		}, []string{"format", "result"}),
		feedDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_events_dropped_total",
			Help:      "Eventos de alteração descartados por inscritos lentos.",
		}),
		feedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_subscribers",
			Help:      "Conexões ativas no feed de alterações.",
		}),
		staleServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_stale_snapshots_total",
			Help:      "Dashboards servidos a partir do último snapshot válido.",
		}),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.renders, m.feedDropped, m.feedClients, m.staleServed)
	return m
}

// Middleware registra contagem e duração das requisições. A rota usada é o
// padrão do Gin (ex.: /api/v1/invoices/:id) para manter a cardinalidade baixa.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveRender registra a geração de um documento
func (m *Metrics) ObserveRender(format string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.renders.WithLabelValues(format, result).Inc()
}

// FeedDropped registra um evento descartado
func (m *Metrics) FeedDropped() {
	m.feedDropped.Inc()
}

// FeedSubscribed ajusta o número de conexões ativas no feed
func (m *Metrics) FeedSubscribed(delta int) {
	m.feedClients.Add(float64(delta))
}

// StaleServed registra um dashboard servido com dados antigos
func (m *Metrics) StaleServed() {
	m.staleServed.Inc()
}

// Handler retorna o handler HTTP do endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry retorna o registry usado pelas métricas
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
