package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DeliversToSessionClientsOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	a := &Client{Hub: hub, SessionID: "s1", Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, SessionID: "s2", Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 1 && hub.Subscribers("s2") == 1 })

	hub.Warn("s1", "Only 2 more images allowed.")

	select {
	case data := <-a.Send:
		var n Notice
		require.NoError(t, json.Unmarshal(data, &n))
		assert.Equal(t, LevelWarn, n.Level)
		assert.Equal(t, "Only 2 more images allowed.", n.Message)
		assert.False(t, n.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("notice not delivered")
	}

	select {
	case <-b.Send:
		t.Fatal("notice leaked to another session")
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 0 })
	_, open := <-a.Send
	assert.False(t, open)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	assert.NotPanics(t, func() {
		hub.Success("nobody", "Product saved")
		hub.Error("nobody", "catalog unavailable")
	})
}

func TestHub_WebsocketStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, "s1")
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	waitFor(t, func() bool { return hub.Subscribers("s1") == 1 })

	hub.Success("s1", "Variant added successfully!")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var n Notice
	require.NoError(t, conn.ReadJSON(&n))
	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "s1", n.SessionID)
}
