package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/assessment-cli/internal/assess"
	"github.com/sells-group/assessment-cli/internal/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate <answers.json>",
	Short: "Check questionnaire completion without scoring",
	Long: `Report which required questions are missing and the overall completion
percentage. Validation is advisory: an incomplete answer set can still be
scored, missing answers just fall back to their defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		progress, _ := cmd.Flags().GetBool("progress")

		r, err := loadRules()
		if err != nil {
			return err
		}
		processor := assess.New(r)

		answers, err := readAnswers(args[0])
		if err != nil {
			return err
		}

		var out any
		if progress {
			out = processor.Progress(answers)
		} else {
			out = processor.Validate(answers)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return eris.Wrap(err, "validate: encode report")
		}

		if v, ok := out.(model.Validation); ok && !v.IsComplete {
			cmd.SilenceUsage = true
			return eris.Errorf("validate: questionnaire incomplete (%.0f%%)", v.CompletionPercentage)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("progress", false, "report section-level wizard progress instead")
	rootCmd.AddCommand(validateCmd)
}
