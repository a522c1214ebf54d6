package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc/internal/config"
)

var (
	cfgFile string
	verbose bool

	// cfg is the loaded configuration, set before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scicalc",
	Short: "Scientific calculator",
	Long: `scicalc evaluates expressions the way they are keyed on a scientific
calculator: implicit multiplication, postfix ! ² ³ ⁻¹ %, prefix √ and ∛,
registers A-F, X, Y, M, and Ans, and degree, radian, or gradian angles.

Settings come from --config, $SCICALC_CONFIG, ./scicalc.toml, or the user
config directory, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadDefault()
		}
		if err != nil {
			return err
		}
		if verbose {
			log.Printf("config: angle_mode=%s display=%s precision=%d", cfg.AngleMode, cfg.DisplayFormat(), cfg.Precision)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML, or YAML by .yaml/.yml extension)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each evaluation to stderr")
}
