package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	e.Use(MetricsMiddleware())
	e.GET("/probe/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusAccepted)
	})

	counter := HTTPRequestCounter.WithLabelValues("/probe/:id", http.MethodGet, "202")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe/1", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe/2", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordHelpers(t *testing.T) {
	authBefore := testutil.ToFloat64(AuthErrorCounter.WithLabelValues("invalid_token"))
	RecordAuthError("invalid_token")
	assert.Equal(t, authBefore+1, testutil.ToFloat64(AuthErrorCounter.WithLabelValues("invalid_token")))

	assignBefore := testutil.ToFloat64(AssignmentCounter.WithLabelValues("create"))
	RecordAssignmentOperation("create")
	assert.Equal(t, assignBefore+1, testutil.ToFloat64(AssignmentCounter.WithLabelValues("create")))

	TrackDBOperation("query")(time.Now())
	TrackAggregation()(time.Now())
}

func TestPrometheusHandlerExposesInfo(t *testing.T) {
	InitMetrics("physio-test")
	InitMetrics("ignored")

	rec := httptest.NewRecorder()
	GetPrometheusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `physio_info{service="physio-test",version="1.0.0"} 1`))
}

func TestStatusCategory(t *testing.T) {
	cases := map[int]string{
		http.StatusOK:                  "2xx",
		http.StatusCreated:             "2xx",
		http.StatusMovedPermanently:    "3xx",
		http.StatusNotFound:            "4xx",
		http.StatusInternalServerError: "5xx",
		0:                              "",
	}
	for status, want := range cases {
		assert.Equal(t, want, statusCategory(status), "status %d", status)
	}
}

func TestMetricsMiddlewareCountsStatusCategory(t *testing.T) {
	e := echo.New()
	e.Use(MetricsMiddleware())
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	})

	counter := StatusCategoryCounter.WithLabelValues("4xx", http.MethodGet)
	before := testutil.ToFloat64(counter)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsMiddlewareRecordsHTTPErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(MetricsMiddleware())
	e.GET("/gone", func(c echo.Context) error {
		return echo.ErrNotFound
	})

	counter := HTTPRequestCounter.WithLabelValues("/gone", http.MethodGet, "404")
	okCounter := HTTPRequestCounter.WithLabelValues("/gone", http.MethodGet, "200")
	category := StatusCategoryCounter.WithLabelValues("4xx", http.MethodGet)
	before, okBefore, categoryBefore := testutil.ToFloat64(counter), testutil.ToFloat64(okCounter), testutil.ToFloat64(category)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gone", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, okBefore, testutil.ToFloat64(okCounter))
	assert.Equal(t, categoryBefore+1, testutil.ToFloat64(category))
}

func TestMetricsMiddlewareRecordsUnknownRoute(t *testing.T) {
	e := echo.New()
	e.Use(MetricsMiddleware())

	counter := HTTPRequestCounter.WithLabelValues("", http.MethodGet, "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
