package main

import (
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/assessment-cli/internal/model"
	"github.com/sells-group/assessment-cli/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <output.xlsx>",
	Short: "Export stored assessments to a spreadsheet",
	Long: `Export stored assessments to an .xlsx workbook for the sales team.
One row per assessment with scores, persona, lead score, and business
context.

Examples:
  # Everything
  export leads.xlsx

  # High-value undelivered leads only
  export hot.xlsx --min-lead-score 75 --undelivered`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("persona", "", "filter by persona tier (P0-P4)")
	f.Int("min-lead-score", 0, "minimum lead score")
	f.Bool("undelivered", false, "only assessments not yet delivered to CRM")
	f.Int("limit", 0, "max rows (0 = all)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	persona, _ := cmd.Flags().GetString("persona")
	minLead, _ := cmd.Flags().GetInt("min-lead-score")
	undelivered, _ := cmd.Flags().GetBool("undelivered")
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	assessments, err := st.ListAssessments(ctx, store.Filter{
		Persona:      model.Tier(persona),
		MinLeadScore: minLead,
		Undelivered:  undelivered,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	if err := writeWorkbook(args[0], assessments); err != nil {
		return err
	}

	zap.L().Info("export complete",
		zap.String("output", args[0]),
		zap.Int("rows", len(assessments)),
	)
	return nil
}

var exportHeader = []string{
	"ID", "Session", "Created", "Persona", "Persona Label",
	"Total Score", "Lead Score", "Priority",
	"Coverage", "Confidence", "Latency", "Automation", "Forecast",
	"Company Size", "Challenge", "Timeline", "KPI Owner", "Growth Strategy",
	"Delivered",
}

func writeWorkbook(path string, assessments []store.Assessment) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Assessments")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().Value = h
	}

	for _, a := range assessments {
		rec := a.Record
		row := sheet.AddRow()
		cells := []string{
			a.ID,
			rec.SessionID,
			a.CreatedAt.Format("2006-01-02 15:04"),
			string(a.Persona),
			rec.Results.PersonaLabel,
			strconv.Itoa(rec.Results.TotalScore),
			strconv.Itoa(a.LeadScore),
			a.LeadPriority,
			strconv.Itoa(rec.Results.Scores.Coverage),
			strconv.Itoa(rec.Results.Scores.Confidence),
			strconv.Itoa(rec.Results.Scores.Latency),
			strconv.Itoa(rec.Results.Scores.Automation),
			strconv.Itoa(rec.Results.Scores.Forecast),
			rec.Demographics.CompanySize,
			rec.BusinessContext.Challenge,
			rec.BusinessContext.Timeline,
			rec.BusinessContext.Owner,
			rec.BusinessContext.Growth,
		}
		for _, v := range cells {
			row.AddCell().Value = v
		}
		delivered := ""
		if a.DeliveredAt != nil {
			delivered = a.DeliveredAt.Format("2006-01-02 15:04")
		}
		row.AddCell().Value = delivered
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
