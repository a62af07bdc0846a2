package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Campaign performance dashboard and report server",
	Long: `insight serves a login-gated campaign analytics dashboard with funnel
KPIs, channel/date filtering, revenue forecasting, and PDF report export,
backed by a CSV file or a sqlite database.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./insight.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
