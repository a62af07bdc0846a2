package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRecords() []models.CampaignRecord {
	return []models.CampaignRecord{
		{CampaignID: "C-1", Date: day("2025-08-01"), Channel: "Google Ads", Impressions: 1000, Clicks: 50, Conversions: 5, Spend: 200, Revenue: 500, Tenant: "ABC Pvt Ltd"},
		{CampaignID: "C-2", Date: day("2025-08-02"), Channel: "Facebook", Impressions: 2000, Clicks: 80, Conversions: 8, Spend: 300, Revenue: 450, Tenant: "ABC Pvt Ltd"},
		{CampaignID: "C-3", Date: day("2025-08-03"), Channel: "Google Ads", Impressions: 1500, Clicks: 60, Conversions: 6, Spend: 250, Revenue: 600, Tenant: "ABC Pvt Ltd"},
	}
}

func TestAggregateWorkedExample(t *testing.T) {
	recs := []models.CampaignRecord{
		{Impressions: 1000, Clicks: 50, Conversions: 5, Spend: 200, Revenue: 500},
	}
	totals := Aggregate(recs)
	assert.Equal(t, 1000, totals.Impressions)
	assert.Equal(t, 50, totals.Clicks)
	assert.Equal(t, 5, totals.Conversions)
	assert.InDelta(t, 0.5, totals.ConversionRate, 1e-9)
	assert.InDelta(t, 150.0, totals.ROI, 1e-9)
}

func TestAggregateSumsMatchDirectSums(t *testing.T) {
	recs := sampleRecords()
	totals := Aggregate(recs)

	var impr, clicks, convs int
	var spend, revenue float64
	for _, r := range recs {
		impr += r.Impressions
		clicks += r.Clicks
		convs += r.Conversions
		spend += r.Spend
		revenue += r.Revenue
	}
	assert.Equal(t, impr, totals.Impressions)
	assert.Equal(t, clicks, totals.Clicks)
	assert.Equal(t, convs, totals.Conversions)
	assert.InDelta(t, spend, totals.Spend, 1e-9)
	assert.InDelta(t, revenue, totals.Revenue, 1e-9)
}

func TestAggregateEmptySetIsZero(t *testing.T) {
	totals := Aggregate(nil)
	assert.Equal(t, models.Totals{}, totals)
}

func TestRatioZeroDenominators(t *testing.T) {
	assert.Zero(t, ROI(500, 0))
	assert.Zero(t, ConversionRate(5, 0))
	assert.InDelta(t, 150.0, ROI(500, 200), 1e-9)
	assert.InDelta(t, 0.5, ConversionRate(5, 1000), 1e-9)
}

func TestApplyChannelFilterIdempotent(t *testing.T) {
	recs := sampleRecords()

	first := Aggregate(Apply(recs, Filter{Channel: "Google Ads"}))
	all := Aggregate(Apply(recs, Filter{Channel: AllChannels}))
	again := Aggregate(Apply(recs, Filter{Channel: "Google Ads"}))

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, all)
}

func TestApplyDateRangeInclusive(t *testing.T) {
	recs := sampleRecords()
	subset := Apply(recs, Filter{From: day("2025-08-01"), To: day("2025-08-02")})
	require.Len(t, subset, 2)
	assert.Equal(t, "C-1", subset[0].CampaignID)
	assert.Equal(t, "C-2", subset[1].CampaignID)
}

func TestApplyEmptyFilterReturnsAllSorted(t *testing.T) {
	recs := []models.CampaignRecord{
		{CampaignID: "B", Date: day("2025-08-02"), Channel: "x"},
		{CampaignID: "A", Date: day("2025-08-01"), Channel: "x"},
	}
	subset := Apply(recs, Filter{})
	require.Len(t, subset, 2)
	assert.Equal(t, "A", subset[0].CampaignID)
}

func TestGroupByChannel(t *testing.T) {
	groups := GroupByChannel(sampleRecords())
	require.Len(t, groups, 2)
	// sorted by channel name
	assert.Equal(t, "Facebook", groups[0].Channel)
	assert.Equal(t, "Google Ads", groups[1].Channel)
	assert.Equal(t, 2500, groups[1].Impressions)
	assert.Equal(t, 110, groups[1].Clicks)
	assert.InDelta(t, (1100.0-450.0)/450.0*100, groups[1].ROI, 0.01)
}

func TestGroupByDateSorted(t *testing.T) {
	groups := GroupByDate(sampleRecords())
	require.Len(t, groups, 3)
	assert.True(t, groups[0].Date.Before(groups[1].Date))
	assert.True(t, groups[1].Date.Before(groups[2].Date))
}

func TestChannelsAndDateBounds(t *testing.T) {
	recs := sampleRecords()
	assert.Equal(t, []string{"Facebook", "Google Ads"}, Channels(recs))

	from, to, ok := DateBounds(recs)
	require.True(t, ok)
	assert.Equal(t, day("2025-08-01"), from)
	assert.Equal(t, day("2025-08-03"), to)

	_, _, ok = DateBounds(nil)
	assert.False(t, ok)
}

func TestPaginateClamps(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Paginate(rows, 2, 0))
	assert.Equal(t, []int{4, 5}, Paginate(rows, 10, 3))
	assert.Empty(t, Paginate(rows, 2, 99))
	assert.Equal(t, rows, Paginate(rows, 0, 0))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Paginate(rows, 5, -1))
}
