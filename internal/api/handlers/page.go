package handlers

import (
	"io/fs"
	"net/http"
)

// PageHandler serves the single page and its static assets.
type PageHandler struct {
	assets fs.FS
	static http.Handler
}

func NewPageHandler(assets fs.FS) *PageHandler {
	return &PageHandler{
		assets: assets,
		static: http.StripPrefix("/static/", http.FileServer(http.FS(assets))),
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, h.assets, "index.html")
}

func (h *PageHandler) Static(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}
