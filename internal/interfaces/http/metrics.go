package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas Prometheus del libro de movimientos.
var (
	scansDecodedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balanza_scans_decoded_total",
			Help: "Total de lecturas decodificadas, por resultado (weight, no_weight)",
		},
		[]string{"result"},
	)

	movementsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balanza_movements_recorded_total",
			Help: "Total de movimientos registrados, por flujo",
		},
		[]string{"flow"},
	)

	duplicatesSuppressedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balanza_duplicates_suppressed_total",
			Help: "Total de escaneos duplicados suprimidos por la ventana anti doble-escaneo",
		},
	)
)

func init() {
	prometheus.MustRegister(scansDecodedTotal)
	prometheus.MustRegister(movementsRecordedTotal)
	prometheus.MustRegister(duplicatesSuppressedTotal)
}

// MetricsHandler expone /metrics en formato Prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
