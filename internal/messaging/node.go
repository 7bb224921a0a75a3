// Package messaging implements the communicate application: one node of a
// simple peer-to-peer network that listens for and sends text messages over
// websockets.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"slade/internal/cmderr"
	"slade/internal/logger"
	"slade/internal/output"
)

// shutdownTimeout bounds how long Listen waits for open connections on exit.
const shutdownTimeout = 5 * time.Second

// Envelope is the message sent between nodes.
type Envelope struct {
	ID   uuid.UUID `json:"id"`
	From uuid.UUID `json:"from"`
	Body string    `json:"body"`
	Sent time.Time `json:"sent"`
}

// Node is one peer: it can listen for incoming messages and send messages to
// other peers.
type Node struct {
	id        uuid.UUID
	printer   *output.Printer
	upgrader  websocket.Upgrader
	dialer    *websocket.Dialer
	newID     func() uuid.UUID
	now       func() time.Time
	onMessage func(Envelope)
	onListen  func(net.Addr)
	log       *log.Logger
}

// NodeOption configures a Node.
type NodeOption func(*Node)

// WithPrinter sets the printer received messages are written to.
func WithPrinter(printer *output.Printer) NodeOption {
	return func(n *Node) {
		if printer != nil {
			n.printer = printer
		}
	}
}

// WithIDGenerator replaces the UUID source for node and message IDs.
func WithIDGenerator(newID func() uuid.UUID) NodeOption {
	return func(n *Node) {
		if newID != nil {
			n.newID = newID
		}
	}
}

// WithClock replaces the time source for message timestamps.
func WithClock(now func() time.Time) NodeOption {
	return func(n *Node) {
		if now != nil {
			n.now = now
		}
	}
}

// OnMessage registers a callback run for every received message.
func OnMessage(fn func(Envelope)) NodeOption {
	return func(n *Node) {
		n.onMessage = fn
	}
}

// OnListening registers a callback run with the bound address once Listen accepts connections.
func OnListening(fn func(net.Addr)) NodeOption {
	return func(n *Node) {
		n.onListen = fn
	}
}

// NewNode creates a node with a fresh identity.
func NewNode(options ...NodeOption) *Node {
	n := &Node{
		printer: output.GetGlobalPrinter(),
		dialer:  websocket.DefaultDialer,
		newID:   uuid.New,
		now:     time.Now,
		log:     logger.NewStyledLogger("Messaging"),
	}
	for _, opt := range options {
		opt(n)
	}
	n.id = n.newID()
	return n
}

// ID returns the node identity.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Handler accepts websocket connections and prints every message received on them.
func (n *Node) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := n.upgrader.Upgrade(w, r, nil)
		if err != nil {
			n.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer func() { _ = conn.Close() }()

		n.receive(conn)
	})
}

func (n *Node) receive(conn *websocket.Conn) {
	for {
		var envelope Envelope
		if err := conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				n.log.Warn("Connection closed unexpectedly", "remote", conn.RemoteAddr(), "error", err)
			}
			return
		}

		n.log.Debug("Message received", "id", envelope.ID, "from", envelope.From)
		n.printer.Messagef(output.Information, "[%s] %s", envelope.From, envelope.Body)
		if n.onMessage != nil {
			n.onMessage(envelope)
		}
	}
}

// Listen serves the node on addr until ctx is cancelled.
func (n *Node) Listen(ctx context.Context, addr string) error {
	if addr == "" {
		return cmderr.InvalidArgument("listen address")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           n.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	served := make(chan error, 1)
	go func() {
		served <- server.Serve(listener)
	}()

	n.printer.Messagef(output.Information, "Node %s listening on %s", n.id, listener.Addr())
	if n.onListen != nil {
		n.onListen(listener.Addr())
	}

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listener stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop listener: %w", err)
	}
	n.log.Debug("Listener stopped", "addr", listener.Addr())
	return nil
}

// Send delivers body to the peer at target in a single message.
func (n *Node) Send(ctx context.Context, target, body string) error {
	if target == "" {
		return cmderr.InvalidArgument("peer address")
	}
	if body == "" {
		return cmderr.InvalidArgument("message")
	}

	url := PeerURL(target)
	conn, _, err := n.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer func() { _ = conn.Close() }()

	envelope := Envelope{
		ID:   n.newID(),
		From: n.id,
		Body: body,
		Sent: n.now().UTC(),
	}
	if err := conn.WriteJSON(envelope); err != nil {
		return fmt.Errorf("failed to send message to %s: %w", url, err)
	}

	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, closing); err != nil {
		n.log.Debug("Close handshake failed", "peer", url, "error", err)
	}

	n.log.Debug("Message sent", "id", envelope.ID, "peer", url)
	n.printer.Messagef(output.Information, "Message %s sent to %s", envelope.ID, url)
	return nil
}

// PeerURL turns a host:port or URL into a websocket URL.
func PeerURL(target string) string {
	switch {
	case strings.HasPrefix(target, "ws://"), strings.HasPrefix(target, "wss://"):
		return target
	case strings.HasPrefix(target, "http://"):
		return "ws://" + strings.TrimPrefix(target, "http://")
	case strings.HasPrefix(target, "https://"):
		return "wss://" + strings.TrimPrefix(target, "https://")
	default:
		return "ws://" + target
	}
}
