package forecast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/campaign-insight-go/internal/auth"
	"github.com/angelcm/campaign-insight-go/internal/models"
)

// stub model: revenue = 0.1*impressions + 2*clicks + 0.5*spend, so the
// (10000, 500, 2000) example yields exactly 3000.
const stubModel = `{"intercept": 0, "coefficients": [0.1, 2.0, 0.5]}`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roi_model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

var (
	adminUser   = auth.User{Email: "admin@abc.com", Role: auth.RoleAdmin, Tenant: "ABC Pvt Ltd"}
	managerUser = auth.User{Email: "manager@abc.com", Role: auth.RoleManager, Tenant: "ABC Pvt Ltd"}
)

func TestPredictROIExample(t *testing.T) {
	a := NewAdapter(writeModel(t, stubModel))
	require.True(t, a.Available())

	res, err := a.Predict(adminUser, models.ForecastInput{Impressions: 10000, Clicks: 500, Spend: 2000})
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, res.PredictedRevenue, 1e-9)
	assert.InDelta(t, 50.0, res.PredictedROI, 1e-9)
}

func TestPredictManagerForbidden(t *testing.T) {
	a := NewAdapter(writeModel(t, stubModel))
	_, err := a.Predict(managerUser, models.ForecastInput{Impressions: 1, Clicks: 1, Spend: 1})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestPredictMissingArtifact(t *testing.T) {
	a := NewAdapter(filepath.Join(t.TempDir(), "missing.json"))
	assert.False(t, a.Available())

	_, err := a.Predict(adminUser, models.ForecastInput{Impressions: 1, Clicks: 1, Spend: 1})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictMalformedArtifact(t *testing.T) {
	a := NewAdapter(writeModel(t, `{"intercept": 1, "coefficients": [1]}`))
	assert.False(t, a.Available())

	_, err := a.Predict(adminUser, models.ForecastInput{Impressions: 1, Clicks: 1, Spend: 1})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictRejectsNonPositiveInputs(t *testing.T) {
	a := NewAdapter(writeModel(t, stubModel))
	for _, in := range []models.ForecastInput{
		{Impressions: 0, Clicks: 1, Spend: 1},
		{Impressions: 1, Clicks: -5, Spend: 1},
		{Impressions: 1, Clicks: 1, Spend: 0},
	} {
		_, err := a.Predict(adminUser, in)
		assert.ErrorIs(t, err, ErrBadInput)
	}
}
