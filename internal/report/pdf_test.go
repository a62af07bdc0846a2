package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

func testMeta() Meta {
	from, _ := time.Parse("2006-01-02", "2025-08-01")
	to, _ := time.Parse("2006-01-02", "2025-08-31")
	return Meta{
		Tenant:      "ABC Pvt Ltd",
		TeamLead:    "A. Rao",
		Channel:     "Google Ads",
		From:        from,
		To:          to,
		GeneratedAt: time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildProducesPDF(t *testing.T) {
	records := []models.CampaignRecord{
		{CampaignID: "C-1", Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Channel: "Google Ads", Impressions: 1000, Clicks: 50, Conversions: 5, Spend: 200, Revenue: 500},
	}
	totals := models.Totals{Impressions: 1000, Clicks: 50, Conversions: 5, Spend: 200, Revenue: 500, ConversionRate: 0.5, ROI: 150}
	byChannel := []models.ChannelAgg{{Channel: "Google Ads", Impressions: 1000, Clicks: 50, Conversions: 5, Spend: 200, Revenue: 500, ROI: 150}}

	pdf, err := Build(testMeta(), totals, byChannel, records, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBuildEmptyFilteredSet(t *testing.T) {
	pdf, err := Build(testMeta(), models.Totals{}, nil, nil, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBuildMissingLogoDegrades(t *testing.T) {
	pdf, err := Build(testMeta(), models.Totals{}, nil, nil, Options{LogoPath: "/no/such/logo.png"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBuildSkipsUnreadableChartImage(t *testing.T) {
	pdf, err := Build(testMeta(), models.Totals{}, nil, nil, Options{
		ChartPNGs: map[string][]byte{"Revenue Over Time": []byte("not a png")},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestFilename(t *testing.T) {
	name := Filename("ABC Pvt Ltd", time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "ABC_Pvt_Ltd_campaign_report_2025-08-31.pdf", name)
}

func TestBuildManyRowsPaginates(t *testing.T) {
	var records []models.CampaignRecord
	for i := 0; i < 120; i++ {
		records = append(records, models.CampaignRecord{
			CampaignID: "C-1", Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Channel: "Email", Impressions: 10, Clicks: 1, Conversions: 1, Spend: 1, Revenue: 2,
		})
	}
	pdf, err := Build(testMeta(), models.Totals{}, nil, records, Options{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
