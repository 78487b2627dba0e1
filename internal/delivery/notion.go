package delivery

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/pkg/notion"
)

// NotionSink mirrors qualified assessments into a Notion lead database so
// the sales team sees them alongside manually sourced leads.
type NotionSink struct {
	client notion.Client
	dbID   string
}

// NewNotionSink creates a NotionSink writing into the given database.
func NewNotionSink(client notion.Client, dbID string) *NotionSink {
	return &NotionSink{client: client, dbID: dbID}
}

func (n *NotionSink) Name() string { return "notion" }

func (n *NotionSink) Deliver(ctx context.Context, rec model.SubmissionRecord) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(n.dbID),
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: richText("Assessment " + rec.SessionID),
			},
			"Persona": notionapi.SelectProperty{
				Select: notionapi.Option{Name: string(rec.Results.Persona)},
			},
			"Lead Score": notionapi.NumberProperty{
				Number: float64(rec.Results.LeadScore),
			},
			"Total Score": notionapi.NumberProperty{
				Number: float64(rec.Results.TotalScore),
			},
			"Challenge": notionapi.RichTextProperty{
				RichText: richText(rec.BusinessContext.Challenge),
			},
			"Timeline": notionapi.RichTextProperty{
				RichText: richText(rec.BusinessContext.Timeline),
			},
			"Completed": notionapi.DateProperty{
				Date: &notionapi.DateObject{Start: dateOf(rec)},
			},
		},
	}

	if _, err := n.client.CreatePage(ctx, req); err != nil {
		return eris.Wrap(err, "delivery: notion create page")
	}
	return nil
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}},
	}
}

func dateOf(rec model.SubmissionRecord) *notionapi.Date {
	d := notionapi.Date(rec.Timestamp)
	return &d
}
