// Package report lays out the campaign performance PDF: title block,
// optional logo, metrics summary, per-channel breakdown, and the full
// filtered data table.
package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

// Meta describes the report header.
type Meta struct {
	Tenant      string
	TeamLead    string
	Channel     string
	From, To    time.Time
	GeneratedAt time.Time
}

// Options carry the optional elements. Anything absent is omitted from the
// document; absence never fails the export.
type Options struct {
	LogoPath string
	// ChartPNGs are pre-rendered chart images keyed by title.
	ChartPNGs map[string][]byte
}

// Filename is the suggested download name for a report.
func Filename(tenant string, generatedAt time.Time) string {
	safe := make([]rune, 0, len(tenant))
	for _, r := range tenant {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			safe = append(safe, r)
		default:
			safe = append(safe, '_')
		}
	}
	return fmt.Sprintf("%s_campaign_report_%s.pdf", string(safe), generatedAt.Format("2006-01-02"))
}

// Build composes the document and returns the PDF bytes. An empty record
// set produces a valid document with zero metrics and an empty data table.
func Build(meta Meta, totals models.Totals, byChannel []models.ChannelAgg, records []models.CampaignRecord, opts Options) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Tenant+" Campaign Performance Report", false)
	pdf.AddPage()

	if opts.LogoPath != "" {
		if _, err := os.Stat(opts.LogoPath); err == nil {
			pdf.ImageOptions(opts.LogoPath, 170, 10, 25, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, meta.Tenant+" - Campaign Performance Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if meta.TeamLead != "" {
		pdf.CellFormat(0, 5, "Team Lead: "+meta.TeamLead, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Channel: "+orAll(meta.Channel), "", 1, "L", false, 0, "")
	if !meta.From.IsZero() || !meta.To.IsZero() {
		pdf.CellFormat(0, 5, fmt.Sprintf("Period: %s to %s", meta.From.Format("2006-01-02"), meta.To.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Generated: "+meta.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSectionTitle(pdf, "Summary Metrics")
	writeMetricsTable(pdf, totals)
	pdf.Ln(4)

	if len(byChannel) > 0 {
		writeSectionTitle(pdf, "Channel Breakdown")
		writeChannelTable(pdf, byChannel)
		pdf.Ln(4)
	}

	writeCharts(pdf, opts.ChartPNGs)

	writeSectionTitle(pdf, "Campaign Data")
	writeDataTable(pdf, records)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report output: %w", err)
	}
	return buf.Bytes(), nil
}

func orAll(ch string) string {
	if ch == "" {
		return "All"
	}
	return ch
}

func writeSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
}

func writeMetricsTable(pdf *fpdf.Fpdf, t models.Totals) {
	rows := [][2]string{
		{"Impressions", fmt.Sprintf("%d", t.Impressions)},
		{"Clicks", fmt.Sprintf("%d", t.Clicks)},
		{"Conversions", fmt.Sprintf("%d", t.Conversions)},
		{"Spend", fmt.Sprintf("%.2f", t.Spend)},
		{"Revenue", fmt.Sprintf("%.2f", t.Revenue)},
		{"Conversion Rate (%)", fmt.Sprintf("%.2f", t.ConversionRate)},
		{"ROI (%)", fmt.Sprintf("%.2f", t.ROI)},
	}
	for _, r := range rows {
		pdf.CellFormat(60, 6, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, r[1], "1", 1, "R", false, 0, "")
	}
}

func writeChannelTable(pdf *fpdf.Fpdf, aggs []models.ChannelAgg) {
	headers := []string{"Channel", "Impressions", "Clicks", "Conversions", "Spend", "Revenue", "ROI (%)"}
	widths := []float64{35, 26, 22, 26, 26, 26, 22}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, a := range aggs {
		pdf.CellFormat(widths[0], 6, a.Channel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", a.Impressions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", a.Clicks), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", a.Conversions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", a.Spend), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", a.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", a.ROI), "1", 1, "R", false, 0, "")
	}
}

func writeCharts(pdf *fpdf.Fpdf, charts map[string][]byte) {
	if len(charts) == 0 {
		return
	}
	writeSectionTitle(pdf, "Charts")
	i := 0
	for title, png := range charts {
		name := fmt.Sprintf("chart-%d", i)
		i++
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		if pdf.Err() {
			// Skip an unreadable image rather than failing the report.
			pdf.ClearError()
			continue
		}
		pdf.CellFormat(0, 5, title, "", 1, "L", false, 0, "")
		pdf.ImageOptions(name, -1, -1, 120, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(4)
	}
}

func writeDataTable(pdf *fpdf.Fpdf, records []models.CampaignRecord) {
	headers := []string{"Campaign", "Date", "Channel", "Impr.", "Clicks", "Conv.", "Spend", "Revenue"}
	widths := []float64{28, 22, 27, 22, 18, 16, 24, 26}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	if len(records) == 0 {
		pdf.CellFormat(183, 6, "No records match the current filters.", "1", 1, "C", false, 0, "")
		return
	}
	for _, r := range records {
		pdf.CellFormat(widths[0], 6, r.CampaignID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Channel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", r.Impressions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d", r.Clicks), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%d", r.Conversions), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", r.Spend), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 6, fmt.Sprintf("%.2f", r.Revenue), "1", 1, "R", false, 0, "")
	}
}
