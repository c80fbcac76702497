package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abelgeorge323/MIT-Candidates/internal/feed"
	"github.com/abelgeorge323/MIT-Candidates/internal/logger"
	"github.com/abelgeorge323/MIT-Candidates/internal/reconcile"
)

const (
	PromptSamePerson = "Same person"
	PromptDifferent  = "Different people"
	PromptStopReview = "Stop reviewing"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the combined candidate export against the authoritative active roster",
	Run: func(cmd *cobra.Command, _ []string) {
		reconcileRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().BoolP("auto-approve", "y", false, "skip interactive review of possible matches")
	reconcileCmd.Flags().StringP("report-file", "r", "", "write the reconciliation report to this file instead of a temp file")

	viper.BindPFlag("report-file", reconcileCmd.Flags().Lookup("report-file"))
}

func reconcileRun(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.Feeds == nil ||
		config.Feeds.Combined == "" || config.Feeds.ActiveRoster == "" {
		logger.Fatal("reconciliation needs feeds.combined and feeds.active-roster")
	}

	combined, err := feed.LoadCombined(config.Feeds.Combined)
	if err != nil {
		logger.Fatal("loading combined feed", zap.Error(err))
	}

	active, err := feed.LoadActiveRoster(config.Feeds.ActiveRoster, config.Feeds.Programs)
	if err != nil {
		logger.Fatal("loading active roster", zap.Error(err))
	}

	logger.Info("loaded reconciliation feeds",
		zap.Int("combined", combined.Len()),
		zap.Int("active_roster", active.Len()),
	)

	var opts []reconcile.Option
	if config.Matching != nil {
		opts = append(opts, reconcile.WithThreshold(config.Matching.Threshold))
	}

	matcher := reconcile.New(logger, opts...)
	report, err := matcher.Match(ctx, combined, active)
	if err != nil {
		logger.Fatal("reconciliation failed", zap.Error(err))
	}

	if len(report.Possible) > 0 && cmd.Flag("auto-approve").Value.String() == "false" {
		if err := reviewPossibleMatches(report, logger); err != nil {
			logger.Warn("manual review aborted", zap.Error(err))
		}
	}

	writeReport(cmd, config, report, logger)
}

// reviewPossibleMatches walks the unconfirmed fuzzy pairs interactively, so a
// human can promote the ones that really are the same person.
func reviewPossibleMatches(report *reconcile.Report, zlog *zap.Logger) error {
	pending := make([]reconcile.Pair, len(report.Possible))
	copy(pending, report.Possible)

	for _, pair := range pending {
		label := fmt.Sprintf("%s <-> %s (similarity %.2f)", pair.AName, pair.BName, pair.Similarity)

		fmt.Println(describePair(pair))
		prompt := promptui.Select{
			Label: label,
			Items: []string{PromptSamePerson, PromptDifferent, PromptStopReview},
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptSamePerson:
			if report.Promote(pair.AName, pair.BName) {
				zlog.Info("promoted possible match",
					logger.StringFields(
						logger.StringField{Key: logger.FieldCandidate, Value: pair.AName},
						logger.StringField{Key: "matched_to", Value: pair.BName},
						logger.StringField{Key: logger.FieldSite, Value: pair.ASite},
					)...,
				)
			}
		case PromptDifferent:
			// Left in the possible list for the written report.
		case PromptStopReview:
			return nil
		}
	}
	return nil
}

func describePair(pair reconcile.Pair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  start dates: %q vs %q (same day: %t)\n",
		pair.AStartDate, pair.BStartDate, pair.SameDate)
	fmt.Fprintf(&b, "  sites:       %q vs %q (overlap: %t)",
		pair.ASite, pair.BSite, pair.SameSite)
	return b.String()
}

func writeReport(cmd *cobra.Command, config *Config, report *reconcile.Report, logger *zap.Logger) {
	summary := report.Summarize()
	logger.Info("reconciliation summary",
		zap.Int("exact", summary.Exact),
		zap.Int("confirmed_fuzzy", summary.ConfirmedFuzzy),
		zap.Int("possible", summary.Possible),
		zap.Int("only_in_combined", summary.OnlyInA),
		zap.Int("only_in_active", summary.OnlyInB),
		zap.Int("merged_rows", summary.Merged),
	)

	path := cmd.Flag("report-file").Value.String()
	if path == "" && config.Output != nil {
		path = config.Output.ReportFile
	}

	if path == "" {
		filename, err := report.DumpToTmpFile()
		if err != nil {
			logger.Fatal("writing reconciliation report", zap.Error(err))
		}
		logger.Info("wrote reconciliation report", zap.String("filename", filename))
		return
	}

	if err := report.ToFile(path); err != nil {
		logger.Fatal("writing reconciliation report", zap.Error(err))
	}
	logger.Info("wrote reconciliation report", zap.String("filename", path))
}
