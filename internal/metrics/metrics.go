// Package metrics exposes Prometheus counters for matches and moves.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quixo"

const (
	resultApplied  = "applied"
	resultRejected = "rejected"

	kindOther = "other"
)

type Metrics struct {
	registry *prometheus.Registry

	matchesCreated prometheus.Counter
	matchesDeleted prometheus.Counter
	moves          *prometheus.CounterVec
	moveErrors     *prometheus.CounterVec
}

// New - creates the counters on a registry of their own.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		matchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Total matches created",
		}),
		matchesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_deleted_total",
			Help:      "Total matches deleted",
		}),
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Total cube insertions by direction and result",
		}, []string{"direction", "result"}),
		moveErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "move_errors_total",
			Help:      "Total rejected cube insertions by error kind",
		}, []string{"kind"}),
	}
}

func (that *Metrics) MatchCreated() {
	that.matchesCreated.Inc()
}

func (that *Metrics) MatchDeleted() {
	that.matchesDeleted.Inc()
}

func (that *Metrics) MoveApplied(direction string) {
	that.moves.WithLabelValues(direction, resultApplied).Inc()
}

// MoveRejected - counts a failed move, an empty kind is reported as "other".
func (that *Metrics) MoveRejected(direction, kind string) {
	if kind == "" {
		kind = kindOther
	}

	that.moves.WithLabelValues(direction, resultRejected).Inc()
	that.moveErrors.WithLabelValues(kind).Inc()
}

// Handler - serves the registry in the Prometheus exposition format.
func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}
