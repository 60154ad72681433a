package metrics_test

import (
	"net/http/httptest"
	"testing"

	"gestionmax.fr/hub/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.RecordProgramCreated("catalogue")
	m.RecordProgramCreated("catalogue")
	m.RecordProgramCreated("sur-mesure")
	m.RecordDuplication()
	m.RecordFallback("programmes-formation")
	m.RecordHTMLArchive()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProgramsCreated.WithLabelValues("catalogue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProgramsCreated.WithLabelValues("sur-mesure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProgramDuplications))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackResponses.WithLabelValues("programmes-formation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTMLArchives))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordProgramCreated("catalogue")
		m.RecordDuplication()
		m.RecordFallback("x")
		m.RecordHTMLArchive()
		m.RecordHTTPRequest("GET", "/", 200, 0)
	})
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/programmes-formation/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/programmes-formation/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/inconnu", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/programmes-formation/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
