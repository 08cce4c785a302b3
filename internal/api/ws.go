package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/dealsmart/concierge/internal/agent"
	"github.com/google/uuid"
)

// wsInbound is one customer message over the chat socket.
type wsInbound struct {
	DealerID string `json:"dealer_id,omitempty"`
	Message  string `json:"message"`
}

// wsOutbound is one reply frame.
type wsOutbound struct {
	SessionID string            `json:"session_id"`
	Reply     string            `json:"reply,omitempty"`
	Trace     *agent.TurnResult `json:"trace,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// ChatSocket upgrades to a websocket and runs one orchestrator turn per text
// frame. The session id is minted at accept time, so one connection is one
// conversation.
func (h *Handler) ChatSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.cfg.AllowedOrigins,
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "conversation ended"); closeErr != nil {
			slog.Debug("websocket close", "error", closeErr)
		}
	}()

	sessionID := uuid.New().String()
	ctx := r.Context()

	for {
		_, raw, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 {
				slog.Debug("websocket read ended", "session_id", sessionID, "error", err)
			}
			return
		}

		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			h.writeSocket(ctx, ws, wsOutbound{SessionID: sessionID, Error: "invalid message"})
			continue
		}
		if in.DealerID == "" {
			in.DealerID = h.cfg.DefaultDealerID
		}
		if in.Message == "" {
			continue
		}

		result, err := h.orchestrator.Turn(ctx, agent.TurnRequest{
			DealerID:  in.DealerID,
			SessionID: sessionID,
			Message:   in.Message,
		})
		if err != nil {
			h.writeSocket(ctx, ws, wsOutbound{SessionID: sessionID, Error: err.Error()})
			continue
		}
		h.writeSocket(ctx, ws, wsOutbound{SessionID: sessionID, Reply: result.Reply, Trace: result})
	}
}

func (h *Handler) writeSocket(ctx context.Context, ws *websocket.Conn, out wsOutbound) {
	data, err := json.Marshal(out)
	if err != nil {
		slog.Error("failed to encode websocket frame", "error", err)
		return
	}
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("websocket write failed", "session_id", out.SessionID, "error", err)
	}
}
