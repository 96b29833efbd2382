package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scorebot_build_info",
			Help: "Build information of the bot",
		},
		[]string{"version", "commit", "date"},
	)

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorebot_commands_total",
		Help: "Total number of dispatched commands",
	}, []string{"command", "result"})

	SelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorebot_selections_total",
		Help: "Total number of prompted selections by outcome",
	}, []string{"result"})

	SelectionsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scorebot_selections_pending",
		Help: "Number of selections currently waiting for a reply",
	})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scorebot_fetch_duration_seconds",
		Help:    "Duration of upstream fetches",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms .. ~6.4s
	}, []string{"result"})

	ChunksSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorebot_chunks_sent_total",
		Help: "Total number of rendered chunks sent to channels",
	}, []string{"result"})

	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scorebot_llm_requests_total",
		Help: "Total number of LLM completions by provider",
	}, []string{"provider", "result"})
)
