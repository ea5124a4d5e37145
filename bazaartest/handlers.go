package bazaartest

import "github.com/iov-one/bazaar"

// Handler returns the configured results and counts its calls.
type Handler struct {
	CheckResult bazaar.CheckResult
	CheckErr    error

	DeliverResult bazaar.DeliverResult
	DeliverErr    error

	// OnDeliver runs first in Deliver, it may write to the store. Its
	// error is returned as is.
	OnDeliver func(db bazaar.KVStore) error

	checks, delivers int
}

var _ bazaar.Handler = (*Handler)(nil)

func (h *Handler) Check(bazaar.Context, bazaar.KVStore, bazaar.Tx) (*bazaar.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(_ bazaar.Context, db bazaar.KVStore, _ bazaar.Tx) (*bazaar.DeliverResult, error) {
	h.delivers++
	if h.OnDeliver != nil {
		if err := h.OnDeliver(db); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int   { return h.checks }
func (h *Handler) DeliverCallCount() int { return h.delivers }
func (h *Handler) CallCount() int        { return h.checks + h.delivers }
