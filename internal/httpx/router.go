package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelcm/campaign-insight-go/internal/utils"
)

func NewRouter(log *slog.Logger, s *Server) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Observe(s.prom))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Method(http.MethodGet, "/metrics", s.prom.Handler())

	mux.Get("/login", s.getLogin)
	mux.Post("/login", s.postLogin)
	mux.Post("/logout", s.postLogout)

	// HTML surface: unauthenticated requests bounce to the login form.
	mux.Group(func(r chi.Router) {
		r.Use(s.withSession(true))
		r.Get("/", s.dashboard)
		r.Post("/forecast", s.postForecastForm)
	})

	// JSON API: unauthenticated requests get a 401 envelope.
	mux.Route("/api", func(r chi.Router) {
		r.Use(s.withSession(false))
		r.Get("/channels", s.apiChannels)
		r.Get("/summary", s.apiSummary)
		r.Get("/records", s.apiRecords)
		r.Get("/charts", s.apiCharts)
		r.Post("/forecast", s.apiForecast)
		r.Get("/report", s.apiReport)
		r.Post("/refresh", s.apiRefresh)
	})

	return mux
}
