// Package forecast wraps a pre-trained revenue regression. The model is an
// artifact produced elsewhere; this package only loads it and runs inference.
package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/angelcm/campaign-insight-go/internal/auth"
	"github.com/angelcm/campaign-insight-go/internal/insight"
	"github.com/angelcm/campaign-insight-go/internal/models"
)

var (
	// ErrUnavailable means the model artifact is absent or unreadable. The
	// UI disables the predict action instead of failing the interaction.
	ErrUnavailable = errors.New("forecast unavailable")
	ErrBadInput    = errors.New("forecast inputs must be positive")
)

// Model is the serialized regression: revenue = intercept + coefficients ·
// [impressions, clicks, spend].
type Model struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func (m Model) predict(in models.ForecastInput) float64 {
	return m.Intercept +
		m.Coefficients[0]*in.Impressions +
		m.Coefficients[1]*in.Clicks +
		m.Coefficients[2]*in.Spend
}

// Adapter loads the model artifact once at first use and holds it for the
// process lifetime. Access is restricted to Admins at this boundary, not in
// the rendering layer.
type Adapter struct {
	path string

	once  sync.Once
	model Model
	err   error
}

func NewAdapter(path string) *Adapter { return &Adapter{path: path} }

func (a *Adapter) load() {
	b, err := os.ReadFile(a.path)
	if err != nil {
		a.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		return
	}
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		a.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		return
	}
	if len(m.Coefficients) != 3 {
		a.err = fmt.Errorf("%w: expected 3 coefficients, got %d", ErrUnavailable, len(m.Coefficients))
		return
	}
	a.model = m
}

// Available reports whether the artifact loaded; used to render the
// disabled state without attempting a prediction.
func (a *Adapter) Available() bool {
	a.once.Do(a.load)
	return a.err == nil
}

// Predict runs inference for an Admin. Managers get ErrForbidden; a missing
// artifact surfaces as ErrUnavailable, never a crash.
func (a *Adapter) Predict(user auth.User, in models.ForecastInput) (models.ForecastResult, error) {
	if user.Role != auth.RoleAdmin {
		return models.ForecastResult{}, fmt.Errorf("%w: forecast is Admin-only", auth.ErrForbidden)
	}
	a.once.Do(a.load)
	if a.err != nil {
		return models.ForecastResult{}, a.err
	}
	if in.Impressions <= 0 || in.Clicks <= 0 || in.Spend <= 0 {
		return models.ForecastResult{}, ErrBadInput
	}
	revenue := a.model.predict(in)
	return models.ForecastResult{
		PredictedRevenue: revenue,
		PredictedROI:     insight.ROI(revenue, in.Spend),
	}, nil
}
