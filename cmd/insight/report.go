package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/angelcm/campaign-insight-go/internal/config"
	"github.com/angelcm/campaign-insight-go/internal/insight"
	"github.com/angelcm/campaign-insight-go/internal/report"
)

var (
	reportTenant  string
	reportChannel string
	reportFrom    string
	reportTo      string
	reportOut     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a PDF report offline, without the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if reportTenant == "" {
			return fmt.Errorf("--tenant is required")
		}

		loader, closeLoader, err := newLoader(cfg)
		if err != nil {
			return err
		}
		defer closeLoader()

		recs, err := loader.Load(cmd.Context(), reportTenant)
		if err != nil {
			return err
		}

		f := insight.Filter{Channel: reportChannel}
		if minD, maxD, ok := insight.DateBounds(recs); ok {
			f.From, f.To = minD, maxD
		}
		if reportFrom != "" {
			if f.From, err = time.Parse("2006-01-02", reportFrom); err != nil {
				return fmt.Errorf("bad --from date: %w", err)
			}
		}
		if reportTo != "" {
			if f.To, err = time.Parse("2006-01-02", reportTo); err != nil {
				return fmt.Errorf("bad --to date: %w", err)
			}
		}

		subset := insight.Apply(recs, f)
		now := time.Now().UTC()
		pdf, err := report.Build(report.Meta{
			Tenant:      reportTenant,
			Channel:     f.Channel,
			From:        f.From,
			To:          f.To,
			GeneratedAt: now,
		}, insight.Aggregate(subset), insight.GroupByChannel(subset), subset, report.Options{LogoPath: cfg.LogoPath})
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" {
			out = report.Filename(reportTenant, now)
		}
		if err := os.WriteFile(out, pdf, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows)\n", out, len(subset))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportTenant, "tenant", "", "tenant to report on (required)")
	reportCmd.Flags().StringVar(&reportChannel, "channel", "All", "channel filter")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "start date (YYYY-MM-DD, default: first observed)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "end date (YYYY-MM-DD, default: last observed)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default: <tenant>_campaign_report_<date>.pdf)")
}
