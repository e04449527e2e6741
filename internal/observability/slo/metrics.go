// Package slo tracks service level objectives for the scheduled
// aggregation pipeline. The gauges are updated after every run so the
// current state can be compared against the targets in dashboards and
// alert rules.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets for scheduled aggregation runs.
const (
	// FeedSuccessSLO is the minimum ratio of feeds fetched successfully
	// per run.
	FeedSuccessSLO = 0.95

	// RunDurationSLO is the maximum acceptable run duration in seconds.
	RunDurationSLO = 300.0

	// DeliverySuccessSLO is the minimum ratio of digest deliveries that
	// reach their channel.
	DeliverySuccessSLO = 0.99
)

var (
	// SLOFeedSuccessRatio is the feed fetch success ratio of the last run.
	SLOFeedSuccessRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_feed_success_ratio",
			Help: "Feed fetch success ratio of the last run (0-1), target: 0.95",
		},
	)

	// SLORunDuration is the duration of the last run in seconds.
	SLORunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_run_duration_seconds",
			Help: "Duration of the last aggregation run in seconds, target: <300",
		},
	)

	// SLODeliverySuccessRatio is the digest delivery success ratio of the
	// last run.
	SLODeliverySuccessRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_delivery_success_ratio",
			Help: "Digest delivery success ratio of the last run (0-1), target: 0.99",
		},
	)
)

// UpdateFeedSuccess records the feed fetch outcome of a run.
func UpdateFeedSuccess(succeeded, total int) {
	if total <= 0 {
		return
	}
	SLOFeedSuccessRatio.Set(float64(succeeded) / float64(total))
}

// UpdateRunDuration records how long a run took.
func UpdateRunDuration(seconds float64) {
	SLORunDuration.Set(seconds)
}

// UpdateDeliverySuccess records the digest delivery outcome of a run.
func UpdateDeliverySuccess(delivered, attempted int) {
	if attempted <= 0 {
		return
	}
	SLODeliverySuccessRatio.Set(float64(delivered) / float64(attempted))
}
