package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openagora/agora/internal/types"
)

var upgrader = websocket.Upgrader{}

// fakeFeed is a minimal topic server: it records subscribe/unsubscribe and
// track frames and lets tests push events down the wire.
type fakeFeed struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	frames []frame
	ready  chan struct{}
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{ready: make(chan struct{})}
}

func (s *fakeFeed) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	close(s.ready)
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		s.mu.Lock()
		s.frames = append(s.frames, f)
		s.mu.Unlock()
	}
}

func (s *fakeFeed) push(t *testing.T, topic, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NoError(t, s.conn.WriteJSON(frame{Topic: topic, Event: event, Payload: data}))
}

func (s *fakeFeed) received(action, topic string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.frames {
		if f.Action == action && f.Topic == topic {
			return true
		}
	}
	return false
}

func startClient(t *testing.T) (*Client, *fakeFeed) {
	t.Helper()
	feed := newFakeFeed()
	server := httptest.NewServer(http.HandlerFunc(feed.handler))
	t.Cleanup(server.Close)

	client := NewClient("ws"+strings.TrimPrefix(server.URL, "http"), "tok")
	require.NoError(t, client.Dial(context.Background()))
	t.Cleanup(func() { _ = client.Close() })
	<-feed.ready
	return client, feed
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSubscribeDispatchesToHandler(t *testing.T) {
	client, feed := startClient(t)

	events := make(chan Event, 1)
	sub, err := client.Subscribe(ChannelMessagesTopic("ch-1"), func(e Event) {
		events <- e
	})
	require.NoError(t, err)
	defer sub.Close()

	waitFor(t, func() bool { return feed.received("subscribe", "channel:ch-1:messages") }, "subscribe frame")

	feed.push(t, "channel:ch-1:messages", evMessageInserted, types.MessageWithDetails{
		Message: types.Message{ID: "m-1", ChannelID: "ch-1", Content: "hi"},
	})

	select {
	case event := <-events:
		inserted, ok := event.(MessageInserted)
		require.True(t, ok)
		assert.Equal(t, "m-1", inserted.Message.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestCloseUnsubscribesLastHandle(t *testing.T) {
	client, feed := startClient(t)

	first, err := client.Subscribe("channel:ch-1:reactions", func(Event) {})
	require.NoError(t, err)
	second, err := client.Subscribe("channel:ch-1:reactions", func(Event) {})
	require.NoError(t, err)

	first.Close()
	// Still one subscriber; no unsubscribe yet.
	assert.False(t, feed.received("unsubscribe", "channel:ch-1:reactions"))

	second.Close()
	waitFor(t, func() bool { return feed.received("unsubscribe", "channel:ch-1:reactions") }, "unsubscribe frame")

	// Close is idempotent.
	second.Close()
}

func TestEventsForOtherTopicsNotDispatched(t *testing.T) {
	client, feed := startClient(t)

	var mu sync.Mutex
	var got []Event
	sub, err := client.Subscribe(ChannelMessagesTopic("ch-b"), func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer sub.Close()
	waitFor(t, func() bool { return feed.received("subscribe", "channel:ch-b:messages") }, "subscribe frame")

	// An event scoped to channel A must not reach channel B's handler.
	feed.push(t, "channel:ch-a:messages", evMessageInserted, types.MessageWithDetails{
		Message: types.Message{ID: "m-stale", ChannelID: "ch-a"},
	})
	feed.push(t, "channel:ch-b:messages", evMessageInserted, types.MessageWithDetails{
		Message: types.Message{ID: "m-live", ChannelID: "ch-b"},
	})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, "dispatch")
	mu.Lock()
	defer mu.Unlock()
	inserted := got[0].(MessageInserted)
	assert.Equal(t, "m-live", inserted.Message.ID)
}

func TestTrackAndBroadcast(t *testing.T) {
	client, feed := startClient(t)

	entry := types.PresenceEntry{UserID: "u-1", Username: "jane", DisplayName: "Jane", OnlineAt: time.Now()}
	require.NoError(t, client.Track(ChannelPresenceTopic("ch-1"), entry))
	waitFor(t, func() bool { return feed.received("track", "channel:ch-1:presence") }, "track frame")

	require.NoError(t, client.BroadcastTyping("ch-1", types.TypingEntry{UserID: "u-1", Username: "jane"}, true))
	require.NoError(t, client.BroadcastTyping("ch-1", types.TypingEntry{UserID: "u-1", Username: "jane"}, false))
	waitFor(t, func() bool { return feed.received("broadcast", "channel:ch-1:typing") }, "broadcast frame")

	require.NoError(t, client.Untrack(ChannelPresenceTopic("ch-1")))
	waitFor(t, func() bool { return feed.received("untrack", "channel:ch-1:presence") }, "untrack frame")
}

func TestMalformedFrameIsSkipped(t *testing.T) {
	client, feed := startClient(t)

	events := make(chan Event, 2)
	sub, err := client.Subscribe(ChannelMessagesTopic("ch-1"), func(e Event) {
		events <- e
	})
	require.NoError(t, err)
	defer sub.Close()
	waitFor(t, func() bool { return feed.received("subscribe", "channel:ch-1:messages") }, "subscribe frame")

	// A frame that fails to decode is dropped without killing the loop.
	feed.mu.Lock()
	require.NoError(t, feed.conn.WriteJSON(frame{Topic: "channel:ch-1:messages", Event: "mystery"}))
	feed.mu.Unlock()

	feed.push(t, "channel:ch-1:messages", evMessageInserted, types.MessageWithDetails{
		Message: types.Message{ID: "m-after", ChannelID: "ch-1"},
	})

	select {
	case event := <-events:
		inserted := event.(MessageInserted)
		assert.Equal(t, "m-after", inserted.Message.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("read loop died on malformed frame")
	}
}
