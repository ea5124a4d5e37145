package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// how long their processing took. Transactions are labeled with the phase
// (check or deliver), the message path and the ABCI code of the result.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ bazaar.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors
// with given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bazaar",
			Subsystem: "tx",
			Name:      "processed_total",
			Help:      "Total transactions processed, by phase, message path and result code.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bazaar",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent processing a single transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"phase", "path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrHuman, "register metrics: %s", err)
		}
	}
	return m, nil
}

// Check records the result of the check.
func (m *Metrics) Check(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver records the result of the delivery.
func (m *Metrics) Deliver(ctx bazaar.Context, store bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

// Processed returns the counter of transactions with given labels.
func (m *Metrics) Processed(phase, path string, code uint32) prometheus.Counter {
	return m.txs.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10))
}

func (m *Metrics) observe(phase string, tx bazaar.Tx, start time.Time, err error) {
	path := "(missing)"
	if tx != nil {
		path = bazaar.GetPath(tx)
	}
	code, _ := errors.ABCIInfo(err, false)
	m.Processed(phase, path, code).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
