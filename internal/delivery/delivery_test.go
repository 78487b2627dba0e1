package delivery

import (
	"context"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/assessment-cli/internal/model"
)

type fakeSink struct {
	name string
	err  error

	mu    sync.Mutex
	calls []string
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(_ context.Context, rec model.SubmissionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rec.SessionID)
	return f.err
}

func (f *fakeSink) delivered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func qualifiedRecord(sessionID string, leadScore int) model.SubmissionRecord {
	return model.SubmissionRecord{
		SessionID: sessionID,
		Results:   model.RecordResults{LeadScore: leadScore},
		Consent:   model.Consent{GDPRConsent: true, MarketingOptIn: true},
	}
}

func TestQualifies(t *testing.T) {
	d := NewDispatcher(50)

	tests := []struct {
		name string
		rec  model.SubmissionRecord
		want bool
	}{
		{"consent and score", qualifiedRecord("a", 60), true},
		{"score at floor", qualifiedRecord("b", 50), true},
		{"score below floor", qualifiedRecord("c", 49), false},
		{
			"no consent",
			model.SubmissionRecord{Results: model.RecordResults{LeadScore: 90}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Qualifies(tt.rec))
		})
	}
}

func TestDeliverFansOut(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	d := NewDispatcher(50, a, b)

	require.NoError(t, d.Deliver(context.Background(), qualifiedRecord("sess-1", 80)))
	assert.Equal(t, 1, a.delivered())
	assert.Equal(t, 1, b.delivered())
}

func TestDeliverFailingSinkDoesNotBlockOthers(t *testing.T) {
	bad := &fakeSink{name: "bad", err: eris.New("crm down")}
	good := &fakeSink{name: "good"}
	d := NewDispatcher(50, bad, good)

	err := d.Deliver(context.Background(), qualifiedRecord("sess-2", 80))
	require.Error(t, err)
	assert.Equal(t, 1, good.delivered(), "healthy sink still receives the record")
}

func TestSinksCount(t *testing.T) {
	assert.Equal(t, 0, NewDispatcher(50).Sinks())
	assert.Equal(t, 2, NewDispatcher(50, &fakeSink{name: "a"}, &fakeSink{name: "b"}).Sinks())
}
