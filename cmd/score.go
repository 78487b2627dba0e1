package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/assessment-cli/internal/assess"
)

var scoreCmd = &cobra.Command{
	Use:   "score <answers.json>",
	Short: "Score one completed questionnaire",
	Long: `Score a single answers JSON file through the full assessment pipeline:
dimension scores, maturity persona, personalized recommendations, lead
score, sales alert, and contextual CTA.

The answers file is a flat JSON object keyed by question ID, e.g.:

  {
    "A1": ["Gross profit per job/project", "Job/project margin %"],
    "B2": 7,
    "B3": "Within 1 week",
    "E15": "Inconsistent project profitability"
  }

Examples:
  # Score a file and print the result JSON
  score answers.json

  # Score from stdin with the full dimension breakdown
  cat answers.json | score - --breakdown

  # Score, persist, and forward qualified leads to CRM sinks
  score answers.json --consent --save --deliver`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.Bool("consent", false, "record GDPR consent for this submission")
	f.Bool("save", false, "persist the result to the configured store")
	f.Bool("deliver", false, "forward the record to configured CRM sinks (implies --save)")
	f.Bool("breakdown", false, "include the per-dimension scoring breakdown")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consent, _ := cmd.Flags().GetBool("consent")
	save, _ := cmd.Flags().GetBool("save")
	deliver, _ := cmd.Flags().GetBool("deliver")
	breakdown, _ := cmd.Flags().GetBool("breakdown")

	r, err := loadRules()
	if err != nil {
		return err
	}
	processor := assess.New(r)

	answers, err := readAnswers(args[0])
	if err != nil {
		return err
	}

	result, err := processor.Process(answers, consent)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("session_id", result.Record.SessionID))
	log.Info("assessment scored",
		zap.Int("total_score", result.Scores.Total),
		zap.String("persona", string(result.Persona.Persona)),
		zap.Int("lead_score", result.LeadScore),
	)

	if save || deliver {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		saved, err := st.SaveAssessment(ctx, result)
		if err != nil {
			return err
		}
		log.Info("assessment saved", zap.String("id", saved.ID))

		if deliver {
			dispatcher, err := initDispatcher()
			if err != nil {
				return err
			}
			switch {
			case dispatcher.Sinks() == 0:
				log.Warn("no delivery sinks configured")
			case !dispatcher.Qualifies(result.Record):
				log.Info("record does not qualify for delivery",
					zap.Bool("consent", result.Record.Consent.GDPRConsent),
					zap.Int("lead_score", result.LeadScore),
				)
			default:
				if err := dispatcher.Deliver(ctx, result.Record); err != nil {
					return eris.Wrap(err, "score: deliver")
				}
				if err := st.MarkDelivered(ctx, saved.ID); err != nil {
					return err
				}
			}
		}
	}

	out := any(result)
	if breakdown {
		out = struct {
			Result    any              `json:"result"`
			Breakdown assess.Breakdown `json:"breakdown"`
		}{result, processor.DetailedBreakdown(answers)}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return eris.Wrap(err, "score: encode result")
	}

	if result.SalesAlert.Trigger {
		fmt.Fprintf(os.Stderr, "%s %s lead (%s): %s\n",
			result.LeadPriority.Icon, result.LeadPriority.Level,
			result.SalesAlert.Urgency, result.SalesAlert.Reason)
	}

	return nil
}
