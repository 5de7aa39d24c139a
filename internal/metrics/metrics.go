package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrade_orders_placed_total",
			Help: "Total number of orders accepted by the engine",
		},
		[]string{"side", "type"},
	)
	OrdersFilled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrade_orders_filled_total",
			Help: "Total number of orders filled",
		},
		[]string{"side"},
	)
	OrdersCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrade_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		},
		[]string{"side"},
	)
	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papertrade_orders_rejected_total",
			Help: "Total number of orders rejected by validation",
		},
		[]string{"reason"},
	)
	OpenOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "papertrade_open_orders",
			Help: "Current number of resting limit orders",
		},
	)
	LastPrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "papertrade_last_price",
			Help: "Last market price received from the feed",
		},
	)

	FeedTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "papertrade_feed_ticks_total",
			Help: "Total number of price ticks delivered to the engine",
		},
	)
	FeedErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "papertrade_feed_errors_total",
			Help: "Total number of upstream feed request failures",
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(OrdersPlaced)
	prometheus.MustRegister(OrdersFilled)
	prometheus.MustRegister(OrdersCancelled)
	prometheus.MustRegister(OrdersRejected)
	prometheus.MustRegister(OpenOrders)
	prometheus.MustRegister(LastPrice)
	prometheus.MustRegister(FeedTicks)
	prometheus.MustRegister(FeedErrors)
}
