package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/angelcm/campaign-insight-go/internal/auth"
	"github.com/angelcm/campaign-insight-go/internal/dataset"
	"github.com/angelcm/campaign-insight-go/internal/forecast"
	"github.com/angelcm/campaign-insight-go/internal/insight"
	"github.com/angelcm/campaign-insight-go/internal/metrics"
	"github.com/angelcm/campaign-insight-go/internal/models"
	"github.com/angelcm/campaign-insight-go/internal/report"
	"github.com/angelcm/campaign-insight-go/internal/utils"
)

const sessionCookie = "insight_session"

type Server struct {
	log      *slog.Logger
	gate     *auth.Gate
	data     *dataset.Cache
	fc       *forecast.Adapter
	prom     *metrics.Registry
	logoPath string
}

func NewServer(log *slog.Logger, gate *auth.Gate, data *dataset.Cache, fc *forecast.Adapter, prom *metrics.Registry, logoPath string) *Server {
	return &Server{log: log, gate: gate, data: data, fc: fc, prom: prom, logoPath: logoPath}
}

// ---- session plumbing ----

type sessionKeyType struct{}

var sessionKey sessionKeyType

func sessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	return s, ok
}

func (s *Server) withSession(redirect bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(sessionCookie)
			if err == nil {
				if sess, ok := s.gate.Resolve(c.Value); ok {
					next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
					return
				}
			}
			if redirect {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", "login required", utils.RID(r.Context()))
		})
	}
}

// ---- auth pages ----

func (s *Server) getLogin(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, ok := s.gate.Resolve(c.Value); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	s.renderLogin(w, "")
}

func (s *Server) renderLogin(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTpl.Execute(w, struct{ Error string }{errMsg}); err != nil {
		s.log.Error("render login", slog.String("err", err.Error()))
	}
}

func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderLogin(w, "Invalid credentials")
		return
	}
	sess, err := s.gate.Authenticate(r.PostFormValue("email"), r.PostFormValue("secret"))
	if err != nil {
		s.prom.Logins.WithLabelValues("rejected").Inc()
		// Same message whichever field was wrong.
		s.renderLogin(w, "Invalid credentials")
		return
	}
	s.prom.Logins.WithLabelValues("ok").Inc()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) postLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.gate.Logout(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ---- dashboard ----

type filterView struct {
	Channel string
	From    string
	To      string
}

type dashboardData struct {
	Tenant, Email, TeamLead string
	Role                    auth.Role
	DataError               bool
	Channels                []string
	Filter                  filterView
	Totals                  models.Totals
	ByChannel               []models.ChannelAgg
	ForecastAllowed         bool
	ForecastAvailable       bool
	Forecast                *models.ForecastResult
	ForecastError           string
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, r.URL.Query(), nil, "")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, q url.Values, fcResult *models.ForecastResult, fcErr string) {
	sess, _ := sessionFrom(r.Context())
	data := dashboardData{
		Tenant:            sess.User.Tenant,
		Email:             sess.User.Email,
		TeamLead:          sess.User.TeamLead,
		Role:              sess.User.Role,
		ForecastAllowed:   sess.User.Role == auth.RoleAdmin,
		ForecastAvailable: s.fc.Available(),
		Forecast:          fcResult,
		ForecastError:     fcErr,
	}

	recs, err := s.data.Load(r.Context(), sess.User.Tenant)
	if err != nil {
		s.log.Error("load dataset", slog.String("tenant", sess.User.Tenant), slog.String("err", err.Error()))
		data.DataError = true
	} else {
		f, view := parseFilter(q, recs)
		subset := insight.Apply(recs, f)
		data.Channels = insight.Channels(recs)
		data.Filter = view
		data.Totals = insight.Aggregate(subset)
		data.ByChannel = insight.GroupByChannel(subset)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTpl.Execute(w, data); err != nil {
		s.log.Error("render dashboard", slog.String("err", err.Error()))
	}
}

func (s *Server) postForecastForm(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		s.renderDashboard(w, r, url.Values{}, nil, "invalid forecast inputs")
		return
	}
	// The form posts the active filter alongside the inputs so the view the
	// user filtered survives the prediction round trip.
	q := url.Values{
		"channel": {r.PostFormValue("channel")},
		"from":    {r.PostFormValue("from")},
		"to":      {r.PostFormValue("to")},
	}
	in := models.ForecastInput{
		Impressions: atofForm(r.PostFormValue("impressions")),
		Clicks:      atofForm(r.PostFormValue("clicks")),
		Spend:       atofForm(r.PostFormValue("spend")),
	}
	res, err := s.fc.Predict(sess.User, in)
	if err != nil {
		s.renderDashboard(w, r, q, nil, forecastMessage(err))
		return
	}
	s.prom.Forecasts.Inc()
	s.renderDashboard(w, r, q, &res, "")
}

// ---- JSON API ----

func (s *Server) apiChannels(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	recs, err := s.data.Load(r.Context(), sess.User.Tenant)
	if err != nil {
		s.writeDataError(w, r, err)
		return
	}
	var fromStr, toStr string
	if from, to, ok := insight.DateBounds(recs); ok {
		fromStr = from.Format("2006-01-02")
		toStr = to.Format("2006-01-02")
	}
	writeJSON(w, map[string]any{
		"channels": insight.Channels(recs),
		"from":     fromStr,
		"to":       toStr,
	})
}

func (s *Server) apiSummary(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	recs, err := s.data.Load(r.Context(), sess.User.Tenant)
	if err != nil {
		s.writeDataError(w, r, err)
		return
	}
	f, _ := parseFilter(r.URL.Query(), recs)
	subset := insight.Apply(recs, f)
	writeJSON(w, map[string]any{
		"totals":     insight.Aggregate(subset),
		"by_channel": insight.GroupByChannel(subset),
		"by_date":    insight.GroupByDate(subset),
	})
}

func (s *Server) apiRecords(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	recs, err := s.data.Load(r.Context(), sess.User.Tenant)
	if err != nil {
		s.writeDataError(w, r, err)
		return
	}
	q := r.URL.Query()
	f, _ := parseFilter(q, recs)
	subset := insight.Apply(recs, f)
	limit := atoiDef(q.Get("limit"), 100)
	offset := atoiDef(q.Get("offset"), 0)
	writeJSON(w, map[string]any{
		"total":   len(subset),
		"records": insight.Paginate(subset, limit, offset),
	})
}

func (s *Server) apiCharts(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	recs, err := s.data.Load(r.Context(), sess.User.Tenant)
	if err != nil {
		s.writeDataError(w, r, err)
		return
	}
	f, _ := parseFilter(r.URL.Query(), recs)
	writeJSON(w, insight.Charts(insight.Apply(recs, f)))
}

func (s *Server) apiForecast(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	var in models.ForecastInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid forecast input", utils.RID(r.Context()))
		return
	}
	res, err := s.fc.Predict(sess.User, in)
	switch {
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", forecastMessage(err), utils.RID(r.Context()))
	case errors.Is(err, forecast.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "forecast_unavailable", forecastMessage(err), utils.RID(r.Context()))
	case errors.Is(err, forecast.ErrBadInput):
		writeError(w, http.StatusBadRequest, "bad_request", forecastMessage(err), utils.RID(r.Context()))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", "forecast failed", utils.RID(r.Context()))
	default:
		s.prom.Forecasts.Inc()
		writeJSON(w, res)
	}
}

func (s *Server) apiReport(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	recs, err := s.data.Load(r.Context(), sess.User.Tenant)
	if err != nil {
		s.writeDataError(w, r, err)
		return
	}
	f, _ := parseFilter(r.URL.Query(), recs)
	subset := insight.Apply(recs, f)

	now := time.Now().UTC()
	pdf, err := report.Build(report.Meta{
		Tenant:      sess.User.Tenant,
		TeamLead:    sess.User.TeamLead,
		Channel:     f.Channel,
		From:        f.From,
		To:          f.To,
		GeneratedAt: now,
	}, insight.Aggregate(subset), insight.GroupByChannel(subset), subset, report.Options{LogoPath: s.logoPath})
	if err != nil {
		s.log.Error("build report", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "report_failed", "could not generate report", utils.RID(r.Context()))
		return
	}
	s.prom.Reports.Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(sess.User.Tenant, now)+`"`)
	w.Write(pdf)
}

func (s *Server) apiRefresh(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	s.data.Invalidate(sess.User.Tenant)
	writeJSON(w, map[string]string{"status": "refreshed"})
}

// ---- helpers ----

func (s *Server) writeDataError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("load dataset", slog.String("err", err.Error()))
	if errors.Is(err, dataset.ErrDataUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "data_unavailable", "campaign data is unavailable", utils.RID(r.Context()))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", "could not load campaign data", utils.RID(r.Context()))
}

// parseFilter builds the engine filter from query params, defaulting the
// range to the full observed span of the tenant's dataset.
func parseFilter(q url.Values, recs []models.CampaignRecord) (insight.Filter, filterView) {
	minD, maxD, ok := insight.DateBounds(recs)
	f := insight.Filter{Channel: q.Get("channel")}
	if f.Channel == "" {
		f.Channel = insight.AllChannels
	}
	if ok {
		f.From, f.To = minD, maxD
	}
	if t, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		f.From = t
	}
	if t, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		f.To = t
	}
	view := filterView{Channel: f.Channel}
	if !f.From.IsZero() {
		view.From = f.From.Format("2006-01-02")
	}
	if !f.To.IsZero() {
		view.To = f.To.Format("2006-01-02")
	}
	return f, view
}

func forecastMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return "Only Admin can access the revenue forecast"
	case errors.Is(err, forecast.ErrUnavailable):
		return "Forecast unavailable: the model artifact could not be loaded"
	case errors.Is(err, forecast.ErrBadInput):
		return "Forecast inputs must be positive numbers"
	default:
		return "forecast failed"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg, rid string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg, "request_id": rid},
	})
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func atofForm(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
