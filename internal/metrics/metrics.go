// Package metrics exposes counters for the best-effort side channels, so
// swallowed Discord and realtime failures stay observable.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelterplus_game_events_appended_total",
		Help: "Domain events appended to the per-game audit log.",
	})

	RealtimeEmits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelterplus_realtime_emits_total",
		Help: "Room broadcasts delivered to at least one client.",
	})

	RealtimeSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelterplus_realtime_skipped_total",
		Help: "Room broadcasts dropped because no room existed for the game.",
	})

	DiscordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shelterplus_discord_failures_total",
		Help: "Discord posts or DMs that failed and were swallowed.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
