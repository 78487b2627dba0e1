package delivery

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/pkg/salesforce"
)

// SalesforceSink inserts qualified assessments as Salesforce Leads.
type SalesforceSink struct {
	client  salesforce.Client
	sObject string
}

// NewSalesforceSink creates a SalesforceSink. sObject defaults to "Lead".
func NewSalesforceSink(client salesforce.Client, sObject string) *SalesforceSink {
	if sObject == "" {
		sObject = "Lead"
	}
	return &SalesforceSink{client: client, sObject: sObject}
}

func (s *SalesforceSink) Name() string { return "salesforce" }

// Deliver maps the record onto Lead fields and inserts it. The web form
// collects no contact identity, so the standard required fields carry the
// session reference until sales enriches the lead.
func (s *SalesforceSink) Deliver(ctx context.Context, rec model.SubmissionRecord) error {
	fields := map[string]any{
		"LastName":                 "KPI Assessment " + rec.SessionID,
		"Company":                  "Unknown (self-serve assessment)",
		"LeadSource":               "KPI Maturity Assessment",
		"Assessment_Session__c":    rec.SessionID,
		"Assessment_Version__c":    rec.AssessmentVersion,
		"KPI_Persona__c":           string(rec.Results.Persona),
		"KPI_Persona_Label__c":     rec.Results.PersonaLabel,
		"KPI_Total_Score__c":       rec.Results.TotalScore,
		"Lead_Score__c":            rec.Results.LeadScore,
		"Company_Size__c":          rec.Demographics.CompanySize,
		"Operational_Challenge__c": rec.BusinessContext.Challenge,
		"Decision_Timeline__c":     rec.BusinessContext.Timeline,
		"KPI_Owner__c":             rec.BusinessContext.Owner,
		"Growth_Strategy__c":       rec.BusinessContext.Growth,
		"Marketing_Opt_In__c":      rec.Consent.MarketingOptIn,
	}

	if _, err := s.client.InsertOne(ctx, s.sObject, fields); err != nil {
		return eris.Wrap(err, "delivery: salesforce insert")
	}
	return nil
}
