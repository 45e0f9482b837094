package labeling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LabeledTotal counts labeling decisions.
var LabeledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "distance_collector_labels_total",
	Help: "Labeling decisions, by decision",
}, []string{"decision"})
