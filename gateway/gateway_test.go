// File: gateway_test.go
// Title: WebSocket Chat Gateway Tests
// Description: Unit tests for the gateway covering the chat round trip,
//              error envelopes, the ping handshake and unknown message
//              types.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-08
// Modified: 2025-02-08

package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	mcerror "github.com/msto63/mChat/core/error"
	mci18n "github.com/msto63/mChat/core/i18n"
	mclog "github.com/msto63/mChat/core/log"
	mcdispatch "github.com/msto63/mChat/dispatch"
	mcregistry "github.com/msto63/mChat/registry"
	mcruntime "github.com/msto63/mChat/runtime"
	mcsession "github.com/msto63/mChat/session"
)

func quietLogger() *mclog.Logger {
	return mclog.NewWithConfig(mclog.Config{
		Level:  mclog.LevelFatal,
		Output: io.Discard,
	})
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	logger := quietLogger()

	registry, err := mcregistry.NewWithOptions(mcregistry.Options{Logger: logger})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	err = registry.Register(&mcregistry.Command{
		Path: "greet",
		Handler: func(ctx context.Context, call *mcregistry.Call) (*mcregistry.Fragment, error) {
			return mcregistry.NewFragment("hello " + strings.Join(call.Args, " ")), nil
		},
	})
	if err != nil {
		t.Fatalf("failed to register command: %v", err)
	}

	runner, err := mcruntime.NewLocalRunner(mcruntime.Options{
		Logger:  logger,
		History: mcsession.NopHistoryStore{},
	})
	if err != nil {
		t.Fatalf("failed to create runner: %v", err)
	}

	service, err := mcdispatch.New(mcdispatch.Options{
		Logger:   logger,
		Registry: registry,
		Runner:   runner,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	messages, err := mci18n.New(mci18n.Options{Logger: logger})
	if err != nil {
		t.Fatalf("failed to create i18n manager: %v", err)
	}

	gw, err := New(service, Options{Logger: logger, Messages: messages})
	if err != nil {
		t.Fatalf("failed to create gateway: %v", err)
	}
	return gw
}

func dial(t *testing.T, gw *Gateway) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(gw.Handler())
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendChat(t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()
	payload, _ := json.Marshal(WSChatPayload{Text: text})
	if err := conn.WriteJSON(WSMessage{Type: "chat", Payload: payload}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func readResponse(t *testing.T, conn *websocket.Conn) WSResponse {
	t.Helper()
	var resp WSResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return resp
}

func TestChatRoundTrip(t *testing.T) {
	conn := dial(t, newTestGateway(t))

	sendChat(t, conn, "greet big world")
	resp := readResponse(t, conn)

	if resp.Type != "reply" {
		t.Fatalf("type = %q, payload = %v", resp.Type, resp.Payload)
	}
	payload, ok := resp.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload = %T", resp.Payload)
	}
	if payload["text"] != "hello big world" {
		t.Errorf("text = %v", payload["text"])
	}
}

func TestChatUnknownCommand(t *testing.T) {
	conn := dial(t, newTestGateway(t))

	sendChat(t, conn, "nosuchcmd")
	resp := readResponse(t, conn)

	if resp.Type != "error" {
		t.Fatalf("type = %q", resp.Type)
	}
	payload := resp.Payload.(map[string]interface{})
	if payload["code"] != string(mcerror.CodeCommandNotFound) {
		t.Errorf("code = %v", payload["code"])
	}
	message, _ := payload["message"].(string)
	if !strings.Contains(message, "nosuchcmd") {
		t.Errorf("message = %q", message)
	}
}

func TestPingPong(t *testing.T) {
	conn := dial(t, newTestGateway(t))

	if err := conn.WriteJSON(WSMessage{Type: "ping"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if resp := readResponse(t, conn); resp.Type != "pong" {
		t.Errorf("type = %q", resp.Type)
	}
}

func TestUnknownMessageType(t *testing.T) {
	conn := dial(t, newTestGateway(t))

	if err := conn.WriteJSON(WSMessage{Type: "bogus"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	resp := readResponse(t, conn)
	if resp.Type != "error" {
		t.Fatalf("type = %q", resp.Type)
	}
	payload := resp.Payload.(map[string]interface{})
	if payload["code"] != string(mcerror.CodeGatewayError) {
		t.Errorf("code = %v", payload["code"])
	}
}

func TestInvalidChatPayload(t *testing.T) {
	conn := dial(t, newTestGateway(t))

	raw := json.RawMessage(`"not an object"`)
	if err := conn.WriteJSON(WSMessage{Type: "chat", Payload: raw}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	resp := readResponse(t, conn)
	if resp.Type != "error" {
		t.Fatalf("type = %q", resp.Type)
	}
}

func TestNewRequiresService(t *testing.T) {
	if _, err := New(nil, Options{Logger: quietLogger()}); err == nil {
		t.Error("expected error for nil service")
	}
}
