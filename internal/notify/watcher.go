package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/url"

	"github.com/gorilla/websocket"
)

// Watcher subscribes to the backend's websocket cart-event stream and
// invokes OnEvent for every well-formed event. Malformed frames are
// logged and skipped.
type Watcher struct {
	URL     string
	OnEvent func(CartEvent)
}

// URLFor converts the API base URL into the websocket endpoint.
func URLFor(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

// Run connects and reads until the stream closes or ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", w.URL)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		var ev CartEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			log.Printf("[watch] skipping malformed event: %v", err)
			continue
		}
		if w.OnEvent != nil {
			w.OnEvent(ev)
		}
	}
}
