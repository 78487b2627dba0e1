package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/assessment-cli/internal/assess"
	"github.com/sells-group/assessment-cli/internal/delivery"
	"github.com/sells-group/assessment-cli/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch <glob>",
	Short: "Score a directory of answers files concurrently",
	Long: `Score every answers JSON file matching the glob, persist each result,
and optionally forward qualified leads to the configured CRM sinks.

Examples:
  # Score all exported submissions
  batch 'exports/*.json' --consent

  # Score and deliver, ten files at a time
  batch 'exports/*.json' --consent --deliver --concurrency 10`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.Bool("consent", false, "record GDPR consent for all submissions in the batch")
	f.Bool("deliver", false, "forward qualified records to configured CRM sinks")
	f.Int("concurrency", 0, "max files scored in parallel (default from config)")
	f.Int("limit", 0, "max number of files to process (0 = all)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consent, _ := cmd.Flags().GetBool("consent")
	deliver, _ := cmd.Flags().GetBool("deliver")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	limit, _ := cmd.Flags().GetInt("limit")

	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrent
	}

	paths, err := filepath.Glob(args[0])
	if err != nil {
		return eris.Wrapf(err, "batch: bad glob %q", args[0])
	}

	r, err := loadRules()
	if err != nil {
		return err
	}
	processor := assess.New(r)

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	var dispatcher *delivery.Dispatcher
	if deliver {
		dispatcher, err = initDispatcher()
		if err != nil {
			return err
		}
		if dispatcher.Sinks() == 0 {
			return eris.New("batch: --deliver set but no delivery sinks configured")
		}
	}

	return processBatch(ctx, paths, limit, concurrency, processor, st, dispatcher, consent)
}

// processBatch scores the given files concurrently. Individual file
// failures are logged and counted but never abort the batch.
func processBatch(
	ctx context.Context,
	paths []string,
	limit, concurrency int,
	processor *assess.Processor,
	st store.Store,
	dispatcher *delivery.Dispatcher,
	consent bool,
) error {
	if len(paths) == 0 {
		zap.L().Info("no answers files matched")
		return nil
	}

	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed, delivered atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", path))

			answers, err := readAnswers(path)
			if err != nil {
				failed.Add(1)
				log.Error("read failed", zap.Error(err))
				return nil
			}

			result, err := processor.Process(answers, consent)
			if err != nil {
				failed.Add(1)
				log.Error("scoring failed", zap.Error(err))
				return nil
			}

			saved, err := st.SaveAssessment(gctx, result)
			if err != nil {
				failed.Add(1)
				log.Error("save failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("assessment scored",
				zap.String("id", saved.ID),
				zap.Int("total_score", result.Scores.Total),
				zap.String("persona", string(result.Persona.Persona)),
				zap.Int("lead_score", result.LeadScore),
			)

			if dispatcher != nil && dispatcher.Qualifies(result.Record) {
				if err := dispatcher.Deliver(gctx, result.Record); err != nil {
					log.Warn("delivery failed, record kept for resync", zap.Error(err))
					return nil
				}
				if err := st.MarkDelivered(gctx, saved.ID); err != nil {
					log.Warn("mark delivered failed", zap.Error(err))
					return nil
				}
				delivered.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
		zap.Int64("delivered", delivered.Load()),
	)
	return nil
}
