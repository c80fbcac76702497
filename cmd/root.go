package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abelgeorge323/MIT-Candidates/internal/classify"
	"github.com/abelgeorge323/MIT-Candidates/internal/score"
)

const (
	app = "mit-placement"
)

type Config struct {
	Feeds    *FeedsConfig    `mapstructure:"feeds"`
	Classify *ClassifyConfig `mapstructure:"classify"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Scoring  *score.Config   `mapstructure:"scoring"`
	Output   *OutputConfig   `mapstructure:"output"`
}

// FeedsConfig points at the CSV exports produced by the upstream extraction
// scripts.
type FeedsConfig struct {
	Tracking      string   `mapstructure:"tracking"`
	Combined      string   `mapstructure:"combined"`
	OfferAccepted string   `mapstructure:"offer-accepted"`
	Jobs          string   `mapstructure:"jobs"`
	ActiveRoster  string   `mapstructure:"active-roster"`
	Programs      []string `mapstructure:"programs"`
}

type ClassifyConfig struct {
	Thresholds          classify.Thresholds `mapstructure:",squash"`
	PlacedOfferAccepted bool                `mapstructure:"placed-offer-accepted"`
}

type MatchingConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

type OutputConfig struct {
	ReportFile    string `mapstructure:"report-file"`
	VerticalsFile string `mapstructure:"verticals-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "mit-placement classifies MIT training candidates, reconciles roster exports and scores them against open requisitions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("feeds.jobs", "MIT_JOBS_FEED"); err != nil {
		log.Fatalf("binding MIT_JOBS_FEED environment variable: %v", err)
	}

	// The salary-aware rubric is the production one; a config file only
	// carries the key when it switches to the vertical-weighted variant.
	viper.SetDefault("scoring.salary-aware", true)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is mit-placement.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only the run and reconcile commands need a config file.
	if runCmd.CalledAs() == "" && reconcileCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
