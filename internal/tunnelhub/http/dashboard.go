package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

//go:embed web/index.html web/static
var webFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

type dashboardData struct {
	AppName             string
	AutoRefreshInterval int
	Version             string
}

func (r *Router) registerDashboard() {
	static, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}

	data := dashboardData{
		AppName:             r.appName,
		AutoRefreshInterval: r.RefreshInterval,
		Version:             r.buildVersion,
	}

	r.Mux.Handle("GET /{$}", DashboardHandler(data))
	r.Mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	r.Mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// DashboardHandler renders the single-page dashboard.
func DashboardHandler(data dashboardData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.NoCache(w)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTemplate.Execute(w, data); err != nil {
			slogx.FromContext(r.Context()).Error("failed to render dashboard", "error", err)
		}
	}
}
