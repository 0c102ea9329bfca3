package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/BanTheRewind/learn-by-ai/internal/app"
	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

type handlers struct {
	svc           *app.Service
	tpl           *templates
	log           zerolog.Logger
	upgrader      websocket.Upgrader
	defaultHumans int
}

func (h *handlers) renderBoard(gs app.Snapshot, errMsg string) []byte {
	return renderTemplate(h.tpl.board, newBoardView(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Options []int
		Default int
	}{Options: []int{0, 1, 2, 3, 4}, Default: h.defaultHumans}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	humans := h.defaultHumans
	if v := r.Form.Get("humans"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "humans must be a number", http.StatusBadRequest)
			return
		}
		humans = n
	}
	gs, err := h.svc.CreateGame(humans)
	if errors.Is(err, domain.ErrInvalidHumans) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("create game failed")
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := newBoardView(gs, "")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, data))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	seat, errS := strconv.Atoi(r.Form.Get("seat"))
	pos, errP := strconv.Atoi(r.Form.Get("pos"))

	var gs app.Snapshot
	var err error
	switch {
	case errS != nil || errP != nil:
		err = domain.ErrInvalidMove
		gs, _ = h.svc.Get(id)
	case seat < 0 || seat >= domain.Seats:
		err = domain.ErrInvalidSeat
		gs, _ = h.svc.Get(id)
	default:
		gs, err = h.svc.Play(id, domain.Seat(seat), pos)
	}
	if errors.Is(err, app.ErrNotFound) || gs.ID == "" {
		http.NotFound(w, r)
		return
	}
	var errMsg string
	if err != nil {
		errMsg = moveErrorMessage(err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(gs, errMsg))
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Reset(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(gs, ""))
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newStateView(gs))
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	defer unsub()
	// heartbeat ticker
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	// Initial flush of headers
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case e, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, "board", h.renderBoard(e.State, ""))
			if b, err := json.Marshal(newEventView(e)); err == nil {
				writeSSE(w, string(e.Kind), b)
			}
			flusher.Flush()
		}
	}
}

// writeSSE emits one event, prefixing every payload line with "data: ".
func writeSSE(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(strings.TrimSpace(string(payload)), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
