package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func TestURLFor(t *testing.T) {
	u, err := URLFor("http://localhost:8082/api/v1", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8082/ws", u)

	u, err = URLFor("https://store.example.com", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "wss://store.example.com/ws", u)
}

func TestWatcherDeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		require.NoError(t, err)
		defer ws.Close()

		require.NoError(t, ws.WriteJSON(CartEvent{Type: "cart.update", ProductID: "p1", Quantity: 2, At: time.Now().UTC()}))
		// A malformed frame must be skipped, not kill the stream.
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json{")))
		require.NoError(t, ws.WriteJSON(CartEvent{Type: "cart.checkout", At: time.Now().UTC()}))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL, err := URLFor(srv.URL, "/ws")
	require.NoError(t, err)

	events := make(chan CartEvent, 4)
	w := &Watcher{URL: wsURL, OnEvent: func(ev CartEvent) { events <- ev }}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	first := <-events
	assert.Equal(t, "cart.update", first.Type)
	assert.Equal(t, "p1", first.ProductID)
	assert.Equal(t, 2, first.Quantity)

	second := <-events
	assert.Equal(t, "cart.checkout", second.Type)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}
