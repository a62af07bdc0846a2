package dataset

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/campaign-insight-go/internal/models"
)

func setupSQLite(t *testing.T) *SQLiteLoader {
	t.Helper()
	l, err := OpenSQLite(filepath.Join(t.TempDir(), "campaigns.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func d(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestSQLiteLoaderScopesToTenant(t *testing.T) {
	l := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, l.Insert(ctx,
		models.CampaignRecord{CampaignID: "C-1", Date: d("2025-08-01"), Channel: "Google Ads", Impressions: 1000, Clicks: 50, Conversions: 5, Spend: 200, Revenue: 500, Tenant: "ABC Pvt Ltd"},
		models.CampaignRecord{CampaignID: "C-2", Date: d("2025-08-02"), Channel: "Facebook", Impressions: 400, Clicks: 20, Conversions: 2, Spend: 100, Revenue: 150, Tenant: "XYZ Marketing"},
	))

	recs, err := l.Load(ctx, "ABC Pvt Ltd")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "C-1", recs[0].CampaignID)
	assert.Equal(t, d("2025-08-01").UTC(), recs[0].Date)

	// A tenant name that would break a naive interpolated predicate binds
	// cleanly as a parameter and simply matches nothing.
	recs, err = l.Load(ctx, "x' OR '1'='1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSQLiteLoaderEmptyTenant(t *testing.T) {
	l := setupSQLite(t)
	recs, err := l.Load(context.Background(), "ABC Pvt Ltd")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSQLiteLoaderOrdering(t *testing.T) {
	l := setupSQLite(t)
	ctx := context.Background()
	require.NoError(t, l.Insert(ctx,
		models.CampaignRecord{CampaignID: "C-2", Date: d("2025-08-03"), Channel: "Email", Tenant: "T"},
		models.CampaignRecord{CampaignID: "C-1", Date: d("2025-08-01"), Channel: "Email", Tenant: "T"},
	))
	recs, err := l.Load(ctx, "T")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "C-1", recs[0].CampaignID)
}
