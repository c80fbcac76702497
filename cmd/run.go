package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abelgeorge323/MIT-Candidates/internal/classify"
	"github.com/abelgeorge323/MIT-Candidates/internal/feed"
	"github.com/abelgeorge323/MIT-Candidates/internal/logger"
	"github.com/abelgeorge323/MIT-Candidates/internal/pipeline"
	"github.com/abelgeorge323/MIT-Candidates/internal/roster"
	"github.com/abelgeorge323/MIT-Candidates/internal/score"
	"github.com/abelgeorge323/MIT-Candidates/internal/vertical"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enrich the candidate roster and score it against open requisitions",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("matches-file", "o", "", "write ranked matches to this file instead of a temp file")
}

// run is the main command for the cli: load feeds, enrich, score, report.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting mit-placement", zap.String("version", version))

	if config == nil || config.Feeds == nil || config.Feeds.Tracking == "" {
		logger.Fatal("a tracking feed is required under feeds.tracking")
	}

	candidates, err := loadRoster(config, logger)
	if err != nil {
		logger.Fatal("loading candidate feeds", zap.Error(err))
	}

	if candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	deps := pipeline.Deps{
		Logger:     logger,
		Classifier: newClassifier(config),
		Verticals:  loadVerticals(config, logger),
	}

	enriched, err := pipeline.Run(ctx, deps, pipeline.Default(), candidates)
	if err != nil {
		logger.Fatal("enrichment failed", zap.Error(err))
	}

	logReadinessMix(logger, enriched)

	if config.Feeds.Jobs == "" {
		logger.Info("exiting", zap.String("reason", "no jobs feed configured, nothing to score"))
		dumpRoster(logger, enriched)
		return
	}

	jobs, err := feed.LoadJobs(config.Feeds.Jobs)
	if err != nil {
		logger.Fatal("loading jobs feed", zap.Error(err))
	}

	logger.Info("loaded open requisitions", zap.Int("count", jobs.Len()))
	if jobs.Len() == 0 {
		dumpRoster(logger, enriched)
		return
	}

	scorer := score.New(scoringConfig(config))
	matches, err := scorer.All(ctx, enriched, jobs)
	if err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}

	dumpRoster(logger, enriched)
	if err := dumpMatches(cmd, matches); err != nil {
		logger.Fatal("writing match report", zap.Error(err))
	}
}

// loadRoster reads the configured candidate feeds and merges them into one
// canonical roster.
func loadRoster(config *Config, logger *zap.Logger) (*roster.Candidates, error) {
	tracking, err := feed.LoadTracking(config.Feeds.Tracking, time.Now())
	if err != nil {
		return nil, err
	}
	logger.Info("loaded tracking feed", zap.Int("count", tracking.Len()))

	sets := []*roster.Candidates{tracking}

	if config.Feeds.Combined != "" {
		combined, err := feed.LoadCombined(config.Feeds.Combined)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded combined feed", zap.Int("count", combined.Len()))
		sets = append(sets, combined)
	}

	if config.Feeds.OfferAccepted != "" {
		offers, err := feed.LoadOfferAccepted(config.Feeds.OfferAccepted)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded offer-accepted feed", zap.Int("count", offers.Len()))
		sets = append(sets, offers)
	}

	return roster.Merge(sets...), nil
}

func newClassifier(config *Config) *classify.Classifier {
	var opts []classify.Option
	if config.Classify != nil {
		opts = append(opts, classify.WithThresholds(config.Classify.Thresholds))
		if config.Classify.PlacedOfferAccepted {
			opts = append(opts, classify.WithPlacedOfferAccepted())
		}
	}
	return classify.New(opts...)
}

func loadVerticals(config *Config, logger *zap.Logger) *vertical.Table {
	if config.Output == nil || config.Output.VerticalsFile == "" {
		return vertical.Default()
	}

	table, err := vertical.LoadTable(config.Output.VerticalsFile)
	if err != nil {
		logger.Fatal("loading vertical keyword table", zap.Error(err))
	}
	return table
}

func scoringConfig(config *Config) score.Config {
	if config.Scoring == nil {
		return score.DefaultConfig()
	}
	return *config.Scoring
}

func logReadinessMix(logger *zap.Logger, cs *roster.Candidates) {
	counts := cs.CountByReadiness()
	logger.Info("candidate readiness mix",
		zap.Int("total", cs.Len()),
		zap.Int("ready_for_placement", counts[roster.ReadyForPlacement]),
		zap.Int("in_training", counts[roster.InTraining]),
		zap.Int("started_training", counts[roster.StartedTraining]),
		zap.Int("starting_training", counts[roster.StartingTraining]),
		zap.Int("offer_pending", counts[roster.OfferPending]),
	)
}

func dumpRoster(logger *zap.Logger, cs *roster.Candidates) {
	filename, err := cs.DumpToTmpFile()
	if err != nil {
		logger.Warn("dumping enriched roster", zap.Error(err))
		return
	}
	logger.Info("dumped enriched roster", zap.String("filename", filename))
}

func dumpMatches(cmd *cobra.Command, matches []score.CandidateMatches) error {
	path := cmd.Flag("matches-file").Value.String()

	var file *os.File
	var err error
	if path == "" {
		file, err = os.CreateTemp("", "matches_*.json")
	} else {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	}
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}

	fmt.Printf("ranked matches written to %s\n", file.Name())
	return nil
}
