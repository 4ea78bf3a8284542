package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameLogins = "logins_total"
)

// Logins counts authentication handshake outcomes. The step label is either
// "initiate" or "callback".
var Logins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameLogins,
		Help:      "Login handshakes by step and outcome",
		Namespace: Namespace,
	},
	[]string{LabelStep, LabelStatus},
)
