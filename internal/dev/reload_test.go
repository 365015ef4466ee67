package dev

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ReloadMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg ReloadMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitClients(t *testing.T, hub *ReloadHub, n int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestReloadHubBroadcast(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	a := dialHub(t, srv)
	defer a.Close()
	b := dialHub(t, srv)
	defer b.Close()
	waitClients(t, hub, 2)

	hub.NotifyRebuild(12, nil)
	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != ReloadTypeRoutes || msg.Count != 12 {
			t.Errorf("message = %+v, want routes/12", msg)
		}
	}

	hub.NotifyRebuild(0, errors.New("pages directory not found"))
	msg := readMessage(t, a)
	if msg.Type != ReloadTypeError || msg.Error != "pages directory not found" {
		t.Errorf("message = %+v, want error", msg)
	}
}

func TestReloadHubReplaysLastMessage(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	hub.NotifyRebuild(3, nil)

	conn := dialHub(t, srv)
	defer conn.Close()

	msg := readMessage(t, conn)
	if msg.Type != ReloadTypeRoutes || msg.Count != 3 {
		t.Errorf("replayed message = %+v", msg)
	}
}

func TestReloadHubDropsClosedClients(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dialHub(t, srv)
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
}

func TestReloadHubRejectsPlainHTTP(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, httptest.NewRequest("GET", "/__dev/ws", nil))

	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if hub.ClientCount() != 0 {
		t.Error("plain request registered a client")
	}
}
