// Package insight filters tenant-scoped campaign records and computes the
// funnel aggregates, derived ratios, and chart groupings behind the
// dashboard, the report, and the JSON API.
package insight

import (
	"sort"
	"strings"
	"time"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

// AllChannels selects every channel; it is what the UI selector sends for
// the unfiltered view.
const AllChannels = "All"

// Filter is the per-interaction selection. Zero From/To mean the full
// observed range. The range is inclusive on both ends.
type Filter struct {
	Channel string
	From    time.Time
	To      time.Time
}

func (f Filter) matchesChannel(ch string) bool {
	if f.Channel == "" || f.Channel == AllChannels {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(ch), strings.TrimSpace(f.Channel))
}

func (f Filter) matchesDate(d time.Time) bool {
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && d.After(f.To) {
		return false
	}
	return true
}

// Apply returns the subset of records matching the filter, in deterministic
// (date, channel, campaign) order.
func Apply(recs []models.CampaignRecord, f Filter) []models.CampaignRecord {
	out := make([]models.CampaignRecord, 0, len(recs))
	for _, r := range recs {
		if f.matchesChannel(r.Channel) && f.matchesDate(r.Date) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Channel != out[j].Channel {
			return out[i].Channel < out[j].Channel
		}
		return out[i].CampaignID < out[j].CampaignID
	})
	return out
}

// Aggregate sums the funnel over a record set. An empty set yields all
// zeros; zero impressions or zero spend yield zero ratios rather than an
// error.
func Aggregate(recs []models.CampaignRecord) models.Totals {
	var t models.Totals
	for _, r := range recs {
		t.Impressions += r.Impressions
		t.Clicks += r.Clicks
		t.Conversions += r.Conversions
		t.Spend += r.Spend
		t.Revenue += r.Revenue
	}
	t.ConversionRate = round2(ConversionRate(t.Conversions, t.Impressions))
	t.ROI = round2(ROI(t.Revenue, t.Spend))
	return t
}

// ConversionRate is conversions/impressions as a percentage, 0 when there
// are no impressions.
func ConversionRate(conversions, impressions int) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(conversions) / float64(impressions) * 100
}

// ROI is (revenue-spend)/spend as a percentage, 0 when there is no spend.
func ROI(revenue, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return (revenue - spend) / spend * 100
}

// GroupByChannel rolls the set up per channel, sorted by channel name.
func GroupByChannel(recs []models.CampaignRecord) []models.ChannelAgg {
	byCh := map[string]*models.ChannelAgg{}
	for _, r := range recs {
		a, ok := byCh[r.Channel]
		if !ok {
			a = &models.ChannelAgg{Channel: r.Channel}
			byCh[r.Channel] = a
		}
		a.Impressions += r.Impressions
		a.Clicks += r.Clicks
		a.Conversions += r.Conversions
		a.Spend += r.Spend
		a.Revenue += r.Revenue
	}
	out := make([]models.ChannelAgg, 0, len(byCh))
	for _, a := range byCh {
		a.ROI = round2(ROI(a.Revenue, a.Spend))
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out
}

// GroupByDate rolls the set up per calendar day, sorted by date.
func GroupByDate(recs []models.CampaignRecord) []models.DailyAgg {
	byDay := map[time.Time]*models.DailyAgg{}
	for _, r := range recs {
		a, ok := byDay[r.Date]
		if !ok {
			a = &models.DailyAgg{Date: r.Date}
			byDay[r.Date] = a
		}
		a.Impressions += r.Impressions
		a.Clicks += r.Clicks
		a.Conversions += r.Conversions
		a.Spend += r.Spend
		a.Revenue += r.Revenue
	}
	out := make([]models.DailyAgg, 0, len(byDay))
	for _, a := range byDay {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Channels lists the distinct channels in the set, sorted, for the UI
// selector.
func Channels(recs []models.CampaignRecord) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range recs {
		if _, ok := seen[r.Channel]; ok {
			continue
		}
		seen[r.Channel] = struct{}{}
		out = append(out, r.Channel)
	}
	sort.Strings(out)
	return out
}

// DateBounds reports the observed [min, max] date range; ok is false for an
// empty set.
func DateBounds(recs []models.CampaignRecord) (from, to time.Time, ok bool) {
	for _, r := range recs {
		if !ok || r.Date.Before(from) {
			from = r.Date
		}
		if !ok || r.Date.After(to) {
			to = r.Date
		}
		ok = true
	}
	return from, to, ok
}

// Paginate clamps limit/offset and slices rows for the records API.
func Paginate[T any](rows []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func round2(f float64) float64 {
	if f < 0 {
		return float64(int64(f*100-0.5)) / 100
	}
	return float64(int64(f*100+0.5)) / 100
}
