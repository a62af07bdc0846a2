package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

// CSVLoader reads campaign records from a file with the columns
// campaign_id, date, channel, impressions, clicks, conversions, spend,
// revenue, tenant (header order is free, names case-insensitive).
type CSVLoader struct {
	Path string
}

func NewCSVLoader(path string) *CSVLoader { return &CSVLoader{Path: path} }

func (l *CSVLoader) Load(ctx context.Context, tenant string) ([]models.CampaignRecord, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()
	recs, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return scopeToTenant(recs, tenant), nil
}

func parseCSV(r io.Reader) ([]models.CampaignRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header row")
	}
	h := map[string]int{}
	for i, col := range rows[0] {
		h[strings.ToLower(strings.TrimSpace(col))] = i
	}
	get := func(row []string, key string) string {
		idx, ok := h[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	var out []models.CampaignRecord
	for _, row := range rows[1:] {
		d := parseDateFlexible(get(row, "date"))
		if d.IsZero() {
			continue
		}
		out = append(out, models.CampaignRecord{
			CampaignID:  get(row, "campaign_id"),
			Date:        d,
			Channel:     get(row, "channel"),
			Impressions: max0(atoi(get(row, "impressions"))),
			Clicks:      max0(atoi(get(row, "clicks"))),
			Conversions: max0(atoi(get(row, "conversions"))),
			Spend:       maxf(atof(get(row, "spend"))),
			Revenue:     maxf(atof(get(row, "revenue"))),
			Tenant:      coalesce(get(row, "tenant"), get(row, "company")),
		})
	}
	return out, nil
}

func parseDateFlexible(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, f := range []string{"2006-01-02", "02/01/2006", "2006/01/02", time.RFC3339} {
		if t, err := time.Parse(f, s); err == nil {
			return dayUTC(t)
		}
	}
	return time.Time{}
}

func scopeToTenant(recs []models.CampaignRecord, tenant string) []models.CampaignRecord {
	out := make([]models.CampaignRecord, 0, len(recs))
	for _, r := range recs {
		if strings.EqualFold(strings.TrimSpace(r.Tenant), strings.TrimSpace(tenant)) {
			out = append(out, r)
		}
	}
	return out
}

func atoi(s string) int {
	v, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}

func coalesce(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func maxf(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
