package insight

import (
	"github.com/angelcm/campaign-insight-go/internal/models"
)

// ChartSpec is a declarative chart description. Rendering happens on the
// client (or not at all); nothing here retains state between calls.
type ChartSpec struct {
	Type   string   `json:"type"` // bar | donut | line | scatter
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	// Sizes holds per-point weights for scatter charts (clicks per record);
	// empty elsewhere.
	Sizes []float64 `json:"sizes,omitempty"`
}

// Charts projects the filtered subset into the dashboard's four charts:
// grouped bar (impressions & clicks per channel), donut (conversion share
// per channel), line (revenue per day), scatter (revenue vs. spend sized by
// clicks).
func Charts(recs []models.CampaignRecord) []ChartSpec {
	byChannel := GroupByChannel(recs)
	byDay := GroupByDate(recs)

	chLabels := make([]string, 0, len(byChannel))
	impr := make([]float64, 0, len(byChannel))
	clicks := make([]float64, 0, len(byChannel))
	convs := make([]float64, 0, len(byChannel))
	for _, a := range byChannel {
		chLabels = append(chLabels, a.Channel)
		impr = append(impr, float64(a.Impressions))
		clicks = append(clicks, float64(a.Clicks))
		convs = append(convs, float64(a.Conversions))
	}

	dayLabels := make([]string, 0, len(byDay))
	revenue := make([]float64, 0, len(byDay))
	for _, a := range byDay {
		dayLabels = append(dayLabels, a.Date.Format("2006-01-02"))
		revenue = append(revenue, a.Revenue)
	}

	scatterLabels := make([]string, 0, len(recs))
	spend := make([]float64, 0, len(recs))
	rev := make([]float64, 0, len(recs))
	sizes := make([]float64, 0, len(recs))
	for _, r := range recs {
		scatterLabels = append(scatterLabels, r.CampaignID)
		spend = append(spend, r.Spend)
		rev = append(rev, r.Revenue)
		sizes = append(sizes, float64(r.Clicks))
	}

	return []ChartSpec{
		{
			Type:   "bar",
			Title:  "Impressions & Clicks by Channel",
			Labels: chLabels,
			Series: []Series{
				{Name: "Impressions", Values: impr},
				{Name: "Clicks", Values: clicks},
			},
		},
		{
			Type:   "donut",
			Title:  "Conversion Share by Channel",
			Labels: chLabels,
			Series: []Series{{Name: "Conversions", Values: convs}},
		},
		{
			Type:   "line",
			Title:  "Revenue Over Time",
			Labels: dayLabels,
			Series: []Series{{Name: "Revenue", Values: revenue}},
		},
		{
			Type:   "scatter",
			Title:  "Revenue vs. Spend",
			Labels: scatterLabels,
			Series: []Series{
				{Name: "Spend", Values: spend},
				{Name: "Revenue", Values: rev, Sizes: sizes},
			},
		},
	}
}
