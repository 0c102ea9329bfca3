package web

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"

	"github.com/BanTheRewind/learn-by-ai/internal/app"
	"github.com/BanTheRewind/learn-by-ai/internal/domain"
)

// Socket message types.
const (
	msgMakeMoveRequest  = "MakeMoveRequest"
	msgResetRequest     = "ResetRequest"
	msgStateBroadcast   = "StateBroadcast"
	msgEventBroadcast   = "EventBroadcast"
	msgMakeMoveResponse = "MakeMoveResponse"
	msgErrorResponse    = "ErrorResponse"
)

// inbound is a message read from a client; Contents is decoded per Type.
type inbound struct {
	Type     string         `json:"type"`
	Contents map[string]any `json:"contents"`
}

type outbound struct {
	Type     string `json:"type"`
	Contents any    `json:"contents"`
}

// makeMoveRequest holds raw JSON numbers so fractions can be rejected.
type makeMoveRequest struct {
	Seat     float64 `mapstructure:"seat"`
	Position float64 `mapstructure:"position"`
}

var errUnparsableMove = errors.New("unable to parse " + msgMakeMoveRequest)

// decodeMove reads a move from message contents. Both fields are required
// and must be whole numbers in range.
func decodeMove(contents map[string]any) (domain.Seat, int, error) {
	var req makeMoveRequest
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   &req,
	})
	if err != nil {
		return 0, 0, err
	}
	if err := dec.Decode(contents); err != nil {
		return 0, 0, errUnparsableMove
	}
	if !hasKeys(md.Keys, "seat", "position") || !whole(req.Seat) || !whole(req.Position) {
		return 0, 0, domain.ErrInvalidMove
	}
	if req.Seat < 0 || req.Seat >= domain.Seats {
		return 0, 0, domain.ErrInvalidSeat
	}
	if req.Position < 0 || req.Position >= domain.Cells {
		return 0, 0, domain.ErrOutOfBounds
	}
	return domain.Seat(req.Seat), int(req.Position), nil
}

func whole(v float64) bool { return !math.IsInf(v, 0) && math.Trunc(v) == v }

func hasKeys(keys []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, k := range keys {
			if k == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type makeMoveResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type errorResponse struct {
	Reason string `json:"reason"`
}

// socket streams game events to a websocket client and accepts moves from it.
func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Str("gameID", id).Msg("websocket upgrade error")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		return
	}
	defer unsub()

	var writeMu sync.Mutex
	send := func(m outbound) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(m)
	}

	if err := send(outbound{Type: msgStateBroadcast, Contents: newStateView(gs)}); err != nil {
		h.log.Error().Err(err).Str("gameID", id).Msg("error sending game state")
		return
	}
	h.log.Info().Str("gameID", id).Str("remote", conn.RemoteAddr().String()).Msg("websocket connection established")

	go func() {
		// Closing the connection unblocks the read loop below.
		defer conn.Close()
		for e := range ch {
			if err := send(outbound{Type: msgEventBroadcast, Contents: newEventView(e)}); err != nil {
				h.log.Error().Err(err).Str("gameID", id).Msg("failed to broadcast event")
				return
			}
		}
	}()

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Error().Err(err).Str("gameID", id).Msg("websocket closed unexpectedly")
			}
			return
		}
		if err := send(h.handleSocketMessage(id, in)); err != nil {
			return
		}
	}
}

func (h *handlers) handleSocketMessage(id string, in inbound) outbound {
	switch in.Type {
	case msgMakeMoveRequest:
		seat, pos, err := decodeMove(in.Contents)
		if errors.Is(err, errUnparsableMove) {
			return outbound{Type: msgErrorResponse, Contents: errorResponse{Reason: err.Error()}}
		}
		if err != nil {
			return outbound{Type: msgMakeMoveResponse, Contents: makeMoveResponse{Reason: moveErrorMessage(err)}}
		}
		if _, err := h.svc.Play(id, seat, pos); err != nil {
			if errors.Is(err, app.ErrNotFound) {
				return outbound{Type: msgErrorResponse, Contents: errorResponse{Reason: err.Error()}}
			}
			return outbound{Type: msgMakeMoveResponse, Contents: makeMoveResponse{Reason: moveErrorMessage(err)}}
		}
		return outbound{Type: msgMakeMoveResponse, Contents: makeMoveResponse{Status: true}}

	case msgResetRequest:
		gs, err := h.svc.Reset(id)
		if err != nil {
			return outbound{Type: msgErrorResponse, Contents: errorResponse{Reason: err.Error()}}
		}
		return outbound{Type: msgStateBroadcast, Contents: newStateView(gs)}

	default:
		return outbound{Type: msgErrorResponse, Contents: errorResponse{Reason: "unknown message type " + in.Type}}
	}
}
