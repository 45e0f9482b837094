package control

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GesturesTotal counts gestures delivered to the device.
var GesturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "distance_collector_gestures_total",
	Help: "Gestures sent to the device, by gesture",
}, []string{"gesture"})
