package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PositionUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parquimetro_position_updates_total",
		Help: "Total geolocation ticks received",
	})
	GeolocationErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parquimetro_geolocation_errors_total",
		Help: "Geolocation failures reported by clients",
	}, []string{"code"})
	CityLookupsDispatchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parquimetro_city_lookups_dispatched_total",
		Help: "Reverse geocoding lookups dispatched by mode",
	}, []string{"mode"})
	CityLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parquimetro_city_lookups_total",
		Help: "Reverse geocoding lookups by result (found, not_found, error, cache_hit)",
	}, []string{"result"})
	MarkersCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parquimetro_markers_created_total",
		Help: "Markers created on session maps",
	}, []string{"kind"})
	MarkerMovesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parquimetro_marker_moves_total",
		Help: "User marker repositions",
	})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parquimetro_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(PositionUpdatesTotal)
	prometheus.MustRegister(GeolocationErrorsTotal)
	prometheus.MustRegister(CityLookupsDispatchedTotal)
	prometheus.MustRegister(CityLookupsTotal)
	prometheus.MustRegister(MarkersCreatedTotal)
	prometheus.MustRegister(MarkerMovesTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
}

// Handler отдает зарегистрированные метрики для Prometheus
func Handler() http.Handler { return promhttp.Handler() }
