package storefrontserver

import (
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	notificationsdomain "github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
)

const (
	FrameCart          = "cart"
	FrameNotifications = "notifications"

	streamWriteWait  = 10 * time.Second
	defaultPingEvery = 30 * time.Second
)

// StreamFrame is one websocket message.
type StreamFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StreamObserver counts open streams.
type StreamObserver interface {
	StreamOpened()
	StreamClosed()
}

type noopStreamObserver struct{}

func (noopStreamObserver) StreamOpened() {}
func (noopStreamObserver) StreamClosed() {}

// StreamAPI pushes the cart and the notification queue of the session over a websocket.
type StreamAPI struct {
	sessions  SessionResolver
	observer  StreamObserver
	logger    *slog.Logger
	upgrader  websocket.Upgrader
	pingEvery time.Duration
}

type StreamOption func(*StreamAPI)

func WithStreamObserver(observer StreamObserver) StreamOption {
	return func(api *StreamAPI) {
		if observer != nil {
			api.observer = observer
		}
	}
}

func WithStreamLogger(logger *slog.Logger) StreamOption {
	return func(api *StreamAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

func WithPingInterval(d time.Duration) StreamOption {
	return func(api *StreamAPI) {
		if d > 0 {
			api.pingEvery = d
		}
	}
}

func NewStreamAPI(sessions SessionResolver, opts ...StreamOption) StreamAPI {
	api := StreamAPI{
		sessions:  sessions,
		observer:  noopStreamObserver{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		upgrader:  websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		pingEvery: defaultPingEvery,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&api)
		}
	}
	return api
}

// Get /api/stream
// Each subscriber first receives the current state. A slow client only ever gets the latest
// value of each frame type; intermediate states are skipped.
func (api *StreamAPI) Stream(c *gin.Context) {
	ws := workspace(c)
	// The upgrader writes the 101 response itself, so the session cookie set by the
	// middleware has to travel in its header or a new session would be unreachable.
	var header http.Header
	if cookies := c.Writer.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = http.Header{"Set-Cookie": cookies}
	}
	conn, err := api.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		// The upgrader has already written the error response.
		return
	}
	defer conn.Close()
	api.observer.StreamOpened()
	defer api.observer.StreamClosed()

	frames := newLatestFrames()
	unsubscribeCart := ws.Cart.Subscribe(func(items cartdomain.Cart) {
		frames.put(FrameCart, newCartView(items))
	})
	defer unsubscribeCart()
	unsubscribeQueue := ws.Notifications.Subscribe(func(queue notificationsdomain.Queue) {
		frames.put(FrameNotifications, queue)
	})
	defer unsubscribeQueue()

	pongWait := 2 * api.pingEvery
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(api.pingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-frames.ready:
			for _, frame := range frames.drain() {
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteJSON(frame); err != nil {
					api.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "stream write failed",
						slog.String("session.id", ws.ID), slog.String("error", err.Error()))
					return
				}
			}
		case <-ticker.C:
			// Keep the workspace warm; if it was swept or purged the client must reconnect.
			current, _, err := api.sessions.Resolve(c.Request.Context(), ws.ID)
			if err != nil || current != ws {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session refreshed"),
					time.Now().Add(streamWriteWait))
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

// latestFrames keeps one pending frame per type and signals when any is waiting.
type latestFrames struct {
	mu      sync.Mutex
	pending map[string]any
	ready   chan struct{}
}

func newLatestFrames() *latestFrames {
	return &latestFrames{pending: map[string]any{}, ready: make(chan struct{}, 1)}
}

func (f *latestFrames) put(kind string, data any) {
	f.mu.Lock()
	f.pending[kind] = data
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *latestFrames) drain() []StreamFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]StreamFrame, 0, len(f.pending))
	for _, kind := range []string{FrameCart, FrameNotifications} {
		if data, ok := f.pending[kind]; ok {
			out = append(out, StreamFrame{Type: kind, Data: data})
			delete(f.pending, kind)
		}
	}
	return out
}

