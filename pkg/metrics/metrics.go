package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics regroupe les collecteurs Prometheus de l'application.
// Les méthodes Record* acceptent un receveur nil (tests, outils en ligne de commande).
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ProgramsCreated     *prometheus.CounterVec
	ProgramDuplications prometheus.Counter
	FallbackResponses   *prometheus.CounterVec
	HTMLArchives        prometheus.Counter
}

// NewMetrics enregistre les collecteurs sur reg (registre par défaut si nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Nombre de requêtes HTTP par méthode, route et code de statut",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latence des requêtes HTTP en secondes",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ProgramsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "programs_created_total",
				Help: "Programmes de formation créés, par type",
			},
			[]string{"type"},
		),
		ProgramDuplications: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "program_duplications_total",
				Help: "Duplications catalogue vers sur-mesure",
			},
		),
		FallbackResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fallback_responses_total",
				Help: "Réponses servies avec les données de démonstration, par endpoint",
			},
			[]string{"endpoint"},
		),
		HTMLArchives: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "html_archives_total",
				Help: "Fiches HTML archivées",
			},
		),
	}
}

func (m *Metrics) RecordProgramCreated(programType string) {
	if m == nil {
		return
	}
	m.ProgramsCreated.WithLabelValues(programType).Inc()
}

func (m *Metrics) RecordDuplication() {
	if m == nil {
		return
	}
	m.ProgramDuplications.Inc()
}

func (m *Metrics) RecordFallback(endpoint string) {
	if m == nil {
		return
	}
	m.FallbackResponses.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) RecordHTMLArchive() {
	if m == nil {
		return
	}
	m.HTMLArchives.Inc()
}

func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusClass(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Middleware mesure chaque requête. Le libellé path est le motif de route
// (/api/programmes-formation/:id) pour borner la cardinalité.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && status != fiber.StatusNotFound {
			path = r.Path
		}
		m.RecordHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}

func statusClass(code int) string {
	switch code {
	case 200, 201, 400, 404, 409, 500:
		return strconv.Itoa(code)
	}
	if code >= 100 && code < 600 {
		return strconv.Itoa(code/100) + "xx"
	}
	return "unknown"
}
