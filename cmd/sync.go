package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/assessment-cli/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-deliver stored assessments that never reached the CRM",
	Long: `Scan the store for qualified assessments with no delivery timestamp
(typically from CRM outages or runs without credentials) and push them
to the configured sinks.`,
	RunE: runSync,
}

func init() {
	f := syncCmd.Flags()
	f.Int("limit", 100, "max assessments to deliver in one run")
	f.Bool("dry-run", false, "list what would be delivered without sending")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limit, _ := cmd.Flags().GetInt("limit")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	dispatcher, err := initDispatcher()
	if err != nil {
		return err
	}
	if !dryRun && dispatcher.Sinks() == 0 {
		return eris.New("sync: no delivery sinks configured")
	}

	pending, err := st.ListAssessments(ctx, store.Filter{
		Undelivered:  true,
		MinLeadScore: cfg.Delivery.MinLeadScore,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		zap.L().Info("nothing to sync")
		return nil
	}

	var delivered, skipped, failed int
	for _, a := range pending {
		log := zap.L().With(
			zap.String("id", a.ID),
			zap.String("session_id", a.Record.SessionID),
			zap.Int("lead_score", a.LeadScore),
		)

		if !dispatcher.Qualifies(a.Record) {
			skipped++
			log.Debug("record does not qualify, skipping")
			continue
		}

		if dryRun {
			delivered++
			log.Info("would deliver")
			continue
		}

		if err := dispatcher.Deliver(ctx, a.Record); err != nil {
			failed++
			log.Error("delivery failed", zap.Error(err))
			continue
		}
		if err := st.MarkDelivered(ctx, a.ID); err != nil {
			failed++
			log.Error("mark delivered failed", zap.Error(err))
			continue
		}
		delivered++
	}

	zap.L().Info("sync complete",
		zap.Int("delivered", delivered),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Bool("dry_run", dryRun),
	)
	return nil
}
