package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QuotesIssued         prometheus.Counter
	QuotesRejected       prometheus.Counter
	RemittancesCreated   prometheus.Counter
	RemittancesConfirmed prometheus.Counter
	ConfirmFailures      *prometheus.CounterVec
	RiskEvaluations      prometheus.Counter
	RiskBlocks           prometheus.Counter
	RateLimitDenials     *prometheus.CounterVec
	LedgerEntriesPosted  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		QuotesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_quotes_issued_total",
			Help: "Total number of quotes issued",
		}),
		QuotesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_quotes_rejected_total",
			Help: "Total number of quotes rejected by the profitability guard",
		}),
		RemittancesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_remittances_created_total",
			Help: "Total number of remittances created",
		}),
		RemittancesConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_remittances_confirmed_total",
			Help: "Total number of remittances confirmed",
		}),
		ConfirmFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remesas_confirm_failures_total",
			Help: "Confirmation failures by reason",
		}, []string{"reason"}),
		RiskEvaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_risk_evaluations_total",
			Help: "Total number of risk evaluations run",
		}),
		RiskBlocks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_risk_blocks_total",
			Help: "Total number of creations blocked by the risk engine",
		}),
		RateLimitDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remesas_ratelimit_denials_total",
			Help: "Requests denied by the rate limiter, by operation",
		}, []string{"operation"}),
		LedgerEntriesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remesas_ledger_entries_posted_total",
			Help: "Total number of ledger entries written",
		}),
	}
}
