package ui

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed static
var staticFS embed.FS

// SetupRoutes serves the shell page, its assets, and the websocket bridge.
func SetupRoutes(l *Loop, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	static, _ := fs.Sub(staticFS, "static")
	staticServer := http.FileServer(http.FS(static))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		staticServer.ServeHTTP(w, req)
	})
	r.Handle("/static/*", http.StripPrefix("/static/", staticServer))
	r.Get("/ws", WSHandler(l, log))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}
