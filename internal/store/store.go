// Package store persists completed assessments. The scoring core never
// touches it; only the CLI and server layers wire a Store in.
package store

import (
	"context"
	"time"

	"github.com/sells-group/assessment-cli/internal/model"
)

// Assessment is one stored assessment row.
type Assessment struct {
	ID           string                 `json:"id"`
	Record       model.SubmissionRecord `json:"record"`
	Persona      model.Tier             `json:"persona"`
	LeadScore    int                    `json:"lead_score"`
	LeadPriority string                 `json:"lead_priority"`
	CreatedAt    time.Time              `json:"created_at"`
	DeliveredAt  *time.Time             `json:"delivered_at,omitempty"`
}

// Filter specifies criteria for listing assessments.
type Filter struct {
	Persona      model.Tier `json:"persona,omitempty"`
	MinLeadScore int        `json:"min_lead_score,omitempty"`
	Undelivered  bool       `json:"undelivered,omitempty"`
	Limit        int        `json:"limit,omitempty"`
	Offset       int        `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessment results.
type Store interface {
	SaveAssessment(ctx context.Context, result *model.Result) (*Assessment, error)
	GetAssessment(ctx context.Context, id string) (*Assessment, error)
	ListAssessments(ctx context.Context, filter Filter) ([]Assessment, error)
	MarkDelivered(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}
