// Package delivery forwards sanitized assessment records to external
// CRM/marketing systems. It sits outside the scoring core: the core hands
// over an immutable record and delivery applies its own policy.
package delivery

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/assessment-cli/internal/model"
)

// Sink is one external destination for assessment records.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rec model.SubmissionRecord) error
}

// Dispatcher fans a record out to every configured sink.
type Dispatcher struct {
	sinks        []Sink
	minLeadScore int
}

// NewDispatcher creates a Dispatcher. Records with a lead score below
// minLeadScore are skipped by Qualifies.
func NewDispatcher(minLeadScore int, sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, minLeadScore: minLeadScore}
}

// Qualifies reports whether a record clears the delivery policy: consent
// given and lead score at or above the configured floor.
func (d *Dispatcher) Qualifies(rec model.SubmissionRecord) bool {
	return rec.Consent.GDPRConsent && rec.Results.LeadScore >= d.minLeadScore
}

// Deliver sends the record to all sinks concurrently. Each sink failure is
// logged; the first error is returned so callers can retry later, but a
// failing sink never blocks the others.
func (d *Dispatcher) Deliver(ctx context.Context, rec model.SubmissionRecord) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range d.sinks {
		g.Go(func() error {
			if err := sink.Deliver(ctx, rec); err != nil {
				zap.L().Error("delivery: sink failed",
					zap.String("sink", sink.Name()),
					zap.String("session_id", rec.SessionID),
					zap.Error(err),
				)
				return err
			}
			zap.L().Info("delivery: record delivered",
				zap.String("sink", sink.Name()),
				zap.String("session_id", rec.SessionID),
				zap.Int("lead_score", rec.Results.LeadScore),
			)
			return nil
		})
	}
	return g.Wait()
}

// Sinks returns the number of configured sinks.
func (d *Dispatcher) Sinks() int {
	return len(d.sinks)
}
