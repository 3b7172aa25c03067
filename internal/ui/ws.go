package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dotadrafter/draft-client/internal/view"
)

// intentMessage is what the shell sends over the socket.
type intentMessage struct {
	Type      string `json:"type"` // "filter" | "sync" | "start" | "hero"
	Search    string `json:"search,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	HeroID    int64  `json:"heroId,omitempty"`
	Confirmed bool   `json:"confirmed,omitempty"`
}

type patchEnvelope struct {
	Type    string       `json:"type"` // "patches"
	Patches []view.Patch `json:"patches"`
}

// WSHandler bridges one connected shell to the session loop: intents in,
// patch batches out.
func WSHandler(l *Loop, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		out := make(chan []view.Patch, 16)

		l.Inbox() <- Join{ClientID: clientID, Outbox: out}
		defer func() { l.Inbox() <- Leave{ClientID: clientID} }()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for patches := range out {
				payload, err := json.Marshal(patchEnvelope{Type: "patches", Patches: patches})
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var im intentMessage
			if err := json.Unmarshal(data, &im); err != nil {
				log.Debug("bad intent payload", zap.String("client", clientID), zap.Error(err))
				continue
			}

			msg, ok := toLoopMsg(clientID, im)
			if !ok {
				log.Debug("unknown intent type", zap.String("type", im.Type))
				continue
			}
			l.Inbox() <- msg
		}
	}
}

func toLoopMsg(clientID string, im intentMessage) (Msg, bool) {
	switch im.Type {
	case "filter":
		return SetFilter{ClientID: clientID, Search: im.Search, Attribute: im.Attribute}, true
	case "sync":
		return SyncRoster{ClientID: clientID}, true
	case "start":
		return StartDraft{ClientID: clientID}, true
	case "hero":
		return HeroClicked{ClientID: clientID, HeroID: im.HeroID, Confirmed: im.Confirmed}, true
	default:
		return nil, false
	}
}
