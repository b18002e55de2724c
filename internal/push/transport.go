package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/biponi/notify/internal/logging"
	"github.com/biponi/notify/internal/session"
)

// Transport is the foreground message source. Connect obtains a
// registration token (empty when push is unavailable); AwaitMessage
// resolves once per call with the next payload and must be re-invoked
// by the caller to keep receiving.
type Transport interface {
	Connect(ctx context.Context) (token string, err error)
	AwaitMessage(ctx context.Context) (Payload, error)
	Close() error
}

// ErrNotConnected indicates AwaitMessage was called before Connect
// succeeded.
var ErrNotConnected = errors.New("push transport not connected")

// tokenFrame is the first frame the push endpoint sends after the dial.
type tokenFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// WSTransport is the websocket-backed Transport.
type WSTransport struct {
	url          string
	session      session.Store
	awaitTimeout time.Duration
	dialer       *websocket.Dialer
	logger       logging.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	token string
}

// WSOption configures a WSTransport.
type WSOption func(*WSTransport)

// WithAwaitTimeout bounds a single AwaitMessage call. A stalled
// transport then surfaces as a timeout error the loop can re-arm on,
// instead of hanging forever.
func WithAwaitTimeout(d time.Duration) WSOption {
	return func(t *WSTransport) {
		if d > 0 {
			t.awaitTimeout = d
		}
	}
}

// WithTransportLogger sets the structured logger.
func WithTransportLogger(l logging.Logger) WSOption {
	return func(t *WSTransport) { t.logger = l }
}

// NewWSTransport creates a websocket transport. An empty url means push
// is disabled: Connect resolves to an empty token and never errors.
func NewWSTransport(url string, sess session.Store, opts ...WSOption) *WSTransport {
	t := &WSTransport{
		url:          url,
		session:      sess,
		awaitTimeout: 90 * time.Second,
		dialer:       websocket.DefaultDialer,
		logger:       logging.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Connect dials the push endpoint and returns the registration token
// from the handshake frame. Unavailable push (disabled, refused dial,
// missing session) resolves as ("", nil) rather than an error; callers
// treat an empty token as "no push". Calling Connect with a live
// connection reuses it.
func (t *WSTransport) Connect(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return t.token, nil
	}
	if t.url == "" {
		return "", nil
	}

	token, err := t.session.Token()
	if err != nil {
		t.logger.Warn("push unavailable: no session token")
		return "", nil
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, resp, err := t.dialer.DialContext(ctx, t.url, header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.logger.Warn("push dial refused", "url", t.url, "status", status, "error", err)
		return "", nil
	}

	conn.SetReadDeadline(time.Now().Add(t.awaitTimeout))
	var frame tokenFrame
	if err := conn.ReadJSON(&frame); err != nil || frame.Token == "" {
		conn.Close()
		t.logger.Warn("push handshake failed", "error", err)
		return "", nil
	}

	t.conn = conn
	t.token = frame.Token
	t.logger.Info("push connected", "push_token", frame.Token)
	return frame.Token, nil
}

// AwaitMessage blocks until the next payload arrives, the await timeout
// expires, or ctx is cancelled. It resolves exactly once per call.
func (t *WSTransport) AwaitMessage(ctx context.Context) (Payload, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return Payload{}, ErrNotConnected
	}

	deadline := time.Now().Add(t.awaitTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	conn.SetReadDeadline(deadline)

	var payload Payload
	if err := conn.ReadJSON(&payload); err != nil {
		if ctx.Err() != nil {
			return Payload{}, ctx.Err()
		}
		t.dropConn(conn)
		return Payload{}, fmt.Errorf("await push message: %w", err)
	}
	return payload, nil
}

// dropConn closes and forgets the connection so the next Connect
// re-dials.
func (t *WSTransport) dropConn(conn *websocket.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == conn {
		t.conn = nil
	}
	conn.Close()
}

// Close tears the connection down.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
