package handler

import (
	"io/fs"
	"net/http"

	"github.com/upadhyay-sonu/Task-Manager/web"
)

// SPAHandler serves the embedded frontend under /app.
type SPAHandler struct {
	fileServer http.Handler
}

func NewSPAHandler() (*SPAHandler, error) {
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}

	return &SPAHandler{
		fileServer: http.StripPrefix("/app/", http.FileServer(http.FS(static))),
	}, nil
}

func (h *SPAHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.fileServer.ServeHTTP(w, r)
}

func (h *SPAHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app/", http.StatusMovedPermanently)
}
