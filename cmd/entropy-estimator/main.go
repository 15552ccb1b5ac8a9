// Command entropy-estimator runs the SP 800-90B non-IID min-entropy
// battery over a sample file, plus the restart-sanity and continuous
// health-test collaborators, wiring pkg/config, pkg/ioformat,
// pkg/battery, pkg/restart, pkg/reporting, and pkg/metrics together.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "entropy-estimator",
	Short: "NIST SP 800-90B non-IID min-entropy estimator battery",
	Long: `entropy-estimator evaluates the per-sample min-entropy of a discrete
noise source by running the SP 800-90B non-IID estimator battery plus
the associated continuous health tests and a bootstrap-based restart
sanity check, given a sequence of integer samples drawn from an
alphabet of size k <= 256.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
