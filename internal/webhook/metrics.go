package webhook

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery outcomes used as metric label values.
const (
	outcomeDelivered = "delivered"
	outcomeFailed    = "failed"
	outcomeDropped   = "dropped"
)

var (
	deliveries     *prometheus.CounterVec //nolint:gochecknoglobals
	deliveriesOnce sync.Once              //nolint:gochecknoglobals
)

func deliveryCounter() *prometheus.CounterVec {
	deliveriesOnce.Do(func() {
		deliveries = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_deliveries_total",
				Help: "Number of webhook deliveries, differentiated by outcome.",
			},
			[]string{"outcome"},
		)
	})

	return deliveries
}
