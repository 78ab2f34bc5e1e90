// Package metrics exposes Prometheus counters for the editor backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// actionsTotal counts dispatched actions by type
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ellipse_actions_total",
		Help: "Total dispatched actions by type",
	}, []string{"type"})

	// commitsTotal counts history commits by outcome
	commitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ellipse_history_commits_total",
		Help: "Total history commits by outcome (appended, branched, truncated, duplicate)",
	}, []string{"outcome"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ellipse_sessions_active",
		Help: "Number of live editor sessions",
	})

	clientsConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ellipse_ws_clients_connected",
		Help: "Number of connected websocket views",
	})
)

// ObserveAction records one dispatched action.
func ObserveAction(actionType string) {
	actionsTotal.WithLabelValues(actionType).Inc()
}

// ObserveCommit records one history commit.
func ObserveCommit(outcome string) {
	commitsTotal.WithLabelValues(outcome).Inc()
}

func SessionOpened()   { sessionsActive.Inc() }
func SessionClosed()   { sessionsActive.Dec() }
func ClientConnected() { clientsConnected.Inc() }
func ClientLeft()      { clientsConnected.Dec() }

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
