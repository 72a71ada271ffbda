package webserver

import (
	"strconv"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govapi_http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "govapi_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	proposalsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "govapi_proposals_submitted_total",
		Help: "Proposals submitted for review",
	})

	votesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "govapi_votes_cast_total",
		Help: "Ballots accepted onto proposal tallies",
	})

	quorumResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govapi_quorum_resolutions_total",
			Help: "Proposals finalized by quorum resolution, by outcome",
		},
		[]string{"outcome"},
	)

	proposalsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "govapi_proposals_by_status",
			Help: "Current proposal count in each lifecycle state",
		},
		[]string{"status"},
	)
)

// refreshProposalGauges recounts lifecycle states. Called ahead of each
// scrape so the gauge tracks the store without a background poller.
func refreshProposalGauges(eng *governance.Engine) {
	for _, st := range []governance.ProposalStatus{
		governance.StatusDraft,
		governance.StatusSubmitted,
		governance.StatusUnderReview,
		governance.StatusChangesRequested,
		governance.StatusActive,
		governance.StatusPassed,
		governance.StatusRejected,
	} {
		ps, err := eng.GetProposalsByStatus(st)
		if err != nil {
			return
		}
		proposalsByStatus.WithLabelValues(string(st)).Set(float64(len(ps)))
	}
}

// MetricsMiddleware records request counts and latency. Labels use the
// route template, not the raw URL, so proposal ids do not blow up
// cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
