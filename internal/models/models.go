package models

import "time"

// CampaignRecord is one row of campaign performance, scoped to a tenant.
type CampaignRecord struct {
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Channel     string    `json:"channel"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	Tenant      string    `json:"tenant"`
}

// Totals are the funnel sums over a filtered record set plus derived ratios.
type Totals struct {
	Impressions    int     `json:"impressions"`
	Clicks         int     `json:"clicks"`
	Conversions    int     `json:"conversions"`
	Spend          float64 `json:"spend"`
	Revenue        float64 `json:"revenue"`
	ConversionRate float64 `json:"conversion_rate"`
	ROI            float64 `json:"roi"`
}

// ChannelAgg is the per-channel rollup used by charts and the report breakdown.
type ChannelAgg struct {
	Channel     string  `json:"channel"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	ROI         float64 `json:"roi"`
}

// DailyAgg is the per-day rollup used by time-series charts.
type DailyAgg struct {
	Date        time.Time `json:"date"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
}

// ForecastInput are the three features the revenue model was trained on.
type ForecastInput struct {
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Spend       float64 `json:"spend"`
}

// ForecastResult is the model output plus the derived ROI.
type ForecastResult struct {
	PredictedRevenue float64 `json:"predicted_revenue"`
	PredictedROI     float64 `json:"predicted_roi"`
}
