// File: gateway.go
// Title: WebSocket Chat Gateway
// Description: Exposes the dispatch service over a WebSocket endpoint. Each
//              connection gets its own chat session; incoming chat messages
//              are executed and the response fragment or a localized error
//              is written back as a typed JSON envelope.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	mcerror "github.com/msto63/mChat/core/error"
	mci18n "github.com/msto63/mChat/core/i18n"
	mclog "github.com/msto63/mChat/core/log"
	mcdispatch "github.com/msto63/mChat/dispatch"
	mcsession "github.com/msto63/mChat/session"
)

// WebSocket upgrader with permissive settings for local deployments
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is the incoming message envelope
type WSMessage struct {
	Type    string          `json:"type"`    // "chat", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSChatPayload is the payload of a "chat" message
type WSChatPayload struct {
	Text string `json:"text"`
}

// WSResponse is the outgoing message envelope
type WSResponse struct {
	Type    string      `json:"type"` // "reply", "error", "pong"
	Payload interface{} `json:"payload"`
}

// WSReplyPayload carries an executed command's response
type WSReplyPayload struct {
	Text string                 `json:"text"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// WSErrorPayload carries a user-facing error
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Gateway serves the dispatch service over WebSocket
type Gateway struct {
	service  *mcdispatch.Service
	messages *mci18n.Manager
	logger   *mclog.Logger
	options  Options
	server   *http.Server
}

// Options configures the gateway
type Options struct {
	// Logger for gateway operations (optional)
	Logger *mclog.Logger

	// Addr is the listen address (default: 127.0.0.1:8460)
	Addr string

	// Messages localizes user-facing errors (optional; errors fall back
	// to their plain text)
	Messages *mci18n.Manager

	// RequestTimeout bounds the handling of one chat message
	// (default: 60s)
	RequestTimeout time.Duration
}

// New creates a gateway serving the given dispatch service
func New(service *mcdispatch.Service, opts Options) (*Gateway, error) {
	if service == nil {
		return nil, mcerror.New("dispatch service cannot be nil").
			WithCode(mcerror.CodeInvalidInput)
	}
	if opts.Logger == nil {
		opts.Logger = mclog.GetDefault()
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8460"
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	g := &Gateway{
		service:  service,
		messages: opts.Messages,
		logger:   opts.Logger.WithField("component", "gateway"),
		options:  opts,
	}
	g.server = &http.Server{
		Addr:    opts.Addr,
		Handler: g.Handler(),
	}
	return g, nil
}

// Handler returns the HTTP handler serving the gateway endpoints
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start listens and serves until Shutdown is called
func (g *Gateway) Start() error {
	g.logger.Info("gateway listening", mclog.Fields{"addr": g.options.Addr})
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return mcerror.Wrap(err, "gateway server failed").
			WithCode(mcerror.CodeGatewayError).
			WithDetail("addr", g.options.Addr)
	}
	return nil
}

// Shutdown stops the gateway, waiting for in-flight handlers
func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

// serveWS upgrades the connection and drives its message loop
func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.ErrorWithErr("websocket upgrade failed", err, mclog.Fields{
			"remote": r.RemoteAddr,
		})
		return
	}
	g.handleConnection(r.Context(), conn)
}

// handleConnection reads message envelopes until the connection closes.
// Chat messages are handled in the read loop, so responses for one
// connection are written in order.
func (g *Gateway) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	sess := mcsession.New("", "websocket")
	logger := g.logger.WithField("sessionID", sess.ID)
	logger.Info("websocket connection established", mclog.Fields{
		"remote": conn.RemoteAddr().String(),
	})

	conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.ErrorWithErr("websocket read error", err, nil)
			} else {
				logger.Info("websocket connection closed", nil)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(120 * time.Second))

		switch msg.Type {
		case "ping":
			g.send(conn, WSResponse{Type: "pong"})

		case "chat":
			var payload WSChatPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				g.sendError(conn, string(mcerror.CodeInvalidInput),
					g.localize("gateway.invalid_payload", nil, "Invalid message payload"))
				continue
			}
			g.handleChat(ctx, conn, sess, payload.Text)

		default:
			g.sendError(conn, string(mcerror.CodeGatewayError),
				g.localize("gateway.unknown_type",
					map[string]interface{}{"Type": msg.Type},
					"Unknown message type: "+msg.Type))
		}
	}
}

// handleChat executes one chat input and writes the outcome
func (g *Gateway) handleChat(ctx context.Context, conn *websocket.Conn, sess *mcsession.Session, text string) {
	execCtx, cancel := context.WithTimeout(ctx, g.options.RequestTimeout)
	defer cancel()

	fragment, err := g.service.Execute(execCtx, sess, text)
	if err != nil {
		code := mcerror.CodeUnknown
		if appErr, ok := err.(*mcerror.Error); ok {
			code = appErr.Code()
		}
		message := err.Error()
		if g.messages != nil {
			message = g.messages.LocalizeError(err)
		}
		g.sendError(conn, string(code), message)
		return
	}
	if fragment == nil {
		// Unmatched input and silenced unknown commands produce nothing.
		return
	}

	g.send(conn, WSResponse{
		Type: "reply",
		Payload: WSReplyPayload{
			Text: fragment.Text,
			Data: fragment.Data,
		},
	})
}

// localize resolves a message key through the i18n catalogue
func (g *Gateway) localize(key string, args map[string]interface{}, fallback string) string {
	if g.messages == nil {
		return fallback
	}
	return g.messages.TWithFallback(key, fallback, args)
}

// send writes one response envelope
func (g *Gateway) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		g.logger.ErrorWithErr("websocket send error", err, nil)
	}
}

// sendError writes an error envelope
func (g *Gateway) sendError(conn *websocket.Conn, code, message string) {
	g.send(conn, WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}
