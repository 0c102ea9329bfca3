package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/BanTheRewind/learn-by-ai/internal/app"
)

// Options configures the HTTP server.
type Options struct {
	Logger        zerolog.Logger
	DefaultHumans int
	// CheckOrigin validates websocket origins; nil allows any origin.
	CheckOrigin func(r *http.Request) bool
}

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, opts Options) http.Handler {
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	h := &handlers{
		svc:           s,
		tpl:           loadTemplates(),
		log:           opts.Logger,
		defaultHumans: opts.DefaultHumans,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}

	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/play", h.play)
		r.Post("/reset", h.reset)
		r.Get("/state", h.state)
		r.Get("/events", h.events)
		r.Get("/ws", h.socket)
	})
	return r
}
