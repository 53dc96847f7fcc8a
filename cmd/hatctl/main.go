// Command hatctl runs and maintains the hat tournament service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "hatctl",
	Short: "Run and maintain the hat tournament service",
	Long: `hatctl starts the API server, applies database migrations, seeds
example tournaments and probes a running instance.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if envFile != "" {
			os.Setenv("APP_ENV_FILE", envFile)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file to read before the environment (default .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hatctl: %v\n", err)
		os.Exit(1)
	}
}
