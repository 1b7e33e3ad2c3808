package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	reconnectBaseWait = time.Second
	reconnectMaxWait  = 30 * time.Second
)

// Client is the subscription multiplexer. It owns one websocket connection,
// dispatches incoming frames to registered handlers, and transparently
// reconnects, resubscribing every live topic and re-announcing tracked
// presence.
type Client struct {
	url   string
	token string

	// connKey identifies this session on presence topics. A fresh key per
	// client instance keeps two terminals of the same user distinct.
	connKey string

	registry *registry

	mu      sync.Mutex
	conn    *websocket.Conn
	tracked map[string]any // topic -> presence payload to re-announce
	closed  bool
	done    chan struct{}
}

// NewClient creates a multiplexer for the given websocket URL. Dial starts
// the connection.
func NewClient(url, token string) *Client {
	return &Client{
		url:      url,
		token:    token,
		connKey:  uuid.NewString(),
		registry: newRegistry(),
		tracked:  make(map[string]any),
		done:     make(chan struct{}),
	}
}

// ConnKey returns this session's presence connection key.
func (c *Client) ConnKey() string { return c.connKey }

// Dial connects and starts the read loop. Subscriptions registered before
// Dial are subscribed once the connection is up.
func (c *Client) Dial(ctx context.Context) error {
	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	if err := c.syncServerState(); err != nil {
		return err
	}
	go c.readLoop()
	return nil
}

func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	header.Set("X-Conn-Key", c.connKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	return conn, err
}

// Subscribe registers a handler for a topic or glob pattern and tells the
// service to start delivering it. The returned handle must be closed when
// the owning view goes away; channel-scoped handles are closed on every
// channel switch.
func (c *Client) Subscribe(topic string, handler Handler) (*Subscription, error) {
	reg, err := c.registry.add(topic, handler)
	if err != nil {
		return nil, err
	}
	sub := &Subscription{id: reg.id, topic: topic, client: c}
	if err := c.write(frame{Action: "subscribe", Topic: topic}); err != nil {
		// Connection may be between reconnects; the resubscribe pass
		// picks the topic up once it is back.
		log.Printf("realtime: subscribe %s deferred: %v", topic, err)
	}
	return sub, nil
}

func (c *Client) release(sub *Subscription) {
	topic, last := c.registry.remove(sub.id)
	if !last {
		return
	}
	c.mu.Lock()
	delete(c.tracked, topic)
	c.mu.Unlock()
	if err := c.write(frame{Action: "unsubscribe", Topic: topic}); err != nil {
		log.Printf("realtime: unsubscribe %s: %v", topic, err)
	}
}

// Track announces the client on a presence topic. The payload is
// re-announced after every reconnect until the topic's subscription closes.
func (c *Client) Track(topic string, payload any) error {
	c.mu.Lock()
	c.tracked[topic] = payload
	c.mu.Unlock()
	return c.writePayload(frame{Action: "track", Topic: topic}, payload)
}

// Untrack withdraws the presence announcement, e.g. when leaving a channel.
func (c *Client) Untrack(topic string) error {
	c.mu.Lock()
	delete(c.tracked, topic)
	c.mu.Unlock()
	return c.write(frame{Action: "untrack", Topic: topic})
}

// Broadcast publishes an ephemeral event on a topic, such as a typing
// indicator. Nothing is persisted.
func (c *Client) Broadcast(topic, event string, payload any) error {
	return c.writePayload(frame{Action: "broadcast", Topic: topic, Event: event}, payload)
}

// BroadcastTyping publishes a typing start or stop on a channel's typing
// topic.
func (c *Client) BroadcastTyping(channelID string, payload any, typing bool) error {
	event := evTyping
	if !typing {
		event = evStopTyping
	}
	return c.Broadcast(ChannelTypingTopic(channelID), event, payload)
}

// Close tears down the connection and stops the read loop.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		return c.conn.Close()
	}
	return nil
}

func (c *Client) write(f frame) error {
	return c.writePayload(f, nil)
}

func (c *Client) writePayload(f frame, payload any) error {
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		f.Payload = data
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return websocket.ErrCloseSent
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(f)
}

// syncServerState subscribes every registered topic and re-announces
// tracked presence, used on connect and after every reconnect.
func (c *Client) syncServerState() error {
	for _, topic := range c.registry.topics() {
		if err := c.write(frame{Action: "subscribe", Topic: topic}); err != nil {
			return err
		}
	}
	c.mu.Lock()
	tracked := make(map[string]any, len(c.tracked))
	for topic, payload := range c.tracked {
		tracked[topic] = payload
	}
	c.mu.Unlock()
	for topic, payload := range tracked {
		if err := c.writePayload(frame{Action: "track", Topic: topic}, payload); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) readLoop() {
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read: %v", err)
			}
			if !c.reconnect() {
				return
			}
			continue
		}
		c.dispatch(f)
	}
}

// dispatch decodes a frame and fans it out to every matching handler. A
// frame that fails to decode is logged and skipped; a dropped event must
// never take the feed down.
func (c *Client) dispatch(f frame) {
	if f.Event == "" {
		return
	}
	event, err := decodeEvent(f)
	if err != nil {
		log.Printf("realtime: drop frame on %s: %v", f.Topic, err)
		return
	}
	for _, handler := range c.registry.handlersFor(f.Topic) {
		handler(event)
	}
}

// reconnect redials with exponential backoff until the connection is back
// or the client is closed. Reports whether the read loop should continue.
func (c *Client) reconnect() bool {
	wait := reconnectBaseWait
	for {
		select {
		case <-c.done:
			return false
		case <-time.After(wait):
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		conn, err := c.connect(ctx)
		cancel()
		if err != nil {
			log.Printf("realtime: reconnect: %v", err)
			if wait *= 2; wait > reconnectMaxWait {
				wait = reconnectMaxWait
			}
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		if err := c.syncServerState(); err != nil {
			log.Printf("realtime: resubscribe: %v", err)
			continue
		}
		return true
	}
}
