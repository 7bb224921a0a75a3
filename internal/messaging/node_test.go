package messaging

import (
	"context"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slade/internal/application"
	"slade/internal/cmderr"
	"slade/internal/output"
	"slade/internal/testutils"
)

const waitTimeout = 5 * time.Second

func receiver(t *testing.T, options ...NodeOption) (*Node, <-chan Envelope, *output.CaptureBuffer) {
	t.Helper()

	received := make(chan Envelope, 4)
	printer, buffer := output.NewCapturePrinter()
	all := append([]NodeOption{
		WithPrinter(printer),
		OnMessage(func(e Envelope) { received <- e }),
	}, options...)
	return NewNode(all...), received, buffer
}

func waitMessage(t *testing.T, received <-chan Envelope) Envelope {
	t.Helper()
	select {
	case envelope := <-received:
		return envelope
	case <-time.After(waitTimeout):
		require.FailNow(t, "timed out waiting for message")
		return Envelope{}
	}
}

func TestNewNode_DeterministicIdentity(t *testing.T) {
	node := NewNode(WithIDGenerator(testutils.SequentialUUIDs()), WithPrinter(output.NewPrinter(output.Silent())))
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", node.ID().String())
}

func TestSend_DeliversEnvelope(t *testing.T) {
	node, received, buffer := receiver(t)
	server := httptest.NewServer(node.Handler())
	defer server.Close()

	sender := NewNode(
		WithIDGenerator(testutils.SequentialUUIDs()),
		WithClock(testutils.SteppingClock()),
		WithPrinter(output.NewPrinter(output.Silent())),
	)

	require.NoError(t, sender.Send(context.Background(), server.URL, "hello; world"))

	envelope := waitMessage(t, received)
	assert.Equal(t, "hello; world", envelope.Body)
	assert.Equal(t, sender.ID(), envelope.From)
	assert.Equal(t, "00000002-0000-4000-8000-000000000002", envelope.ID.String())
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), envelope.Sent)
	assert.Contains(t, buffer.String(), "ℹ ["+sender.ID().String()+"] hello; world")
}

func TestSend_Validation(t *testing.T) {
	node := NewNode(WithPrinter(output.NewPrinter(output.Silent())))

	assert.ErrorIs(t, node.Send(context.Background(), "", "body"), cmderr.ErrInvalidArgument)
	assert.ErrorIs(t, node.Send(context.Background(), "127.0.0.1:1", ""), cmderr.ErrInvalidArgument)
}

func TestSend_UnreachablePeer(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	node := NewNode(WithPrinter(output.NewPrinter(output.Silent())))
	err = node.Send(context.Background(), addr, "anyone there?")
	assert.Error(t, err)
}

func TestListen_ServesUntilCancelled(t *testing.T) {
	addrs := make(chan net.Addr, 1)
	node, received, buffer := receiver(t, OnListening(func(addr net.Addr) { addrs <- addr }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- node.Listen(ctx, "127.0.0.1:0") }()

	var addr net.Addr
	select {
	case addr = <-addrs:
	case <-time.After(waitTimeout):
		require.FailNow(t, "listener did not start")
	}

	sender := NewNode(WithPrinter(output.NewPrinter(output.Silent())))
	require.NoError(t, sender.Send(ctx, addr.String(), "ping"))
	assert.Equal(t, "ping", waitMessage(t, received).Body)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(waitTimeout):
		require.FailNow(t, "listener did not stop")
	}
	assert.Contains(t, buffer.String(), "listening on")
}

func TestListen_Validation(t *testing.T) {
	node := NewNode(WithPrinter(output.NewPrinter(output.Silent())))

	assert.ErrorIs(t, node.Listen(context.Background(), ""), cmderr.ErrInvalidArgument)
	assert.Error(t, node.Listen(context.Background(), "not-an-address"))
}

func TestPeerURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "localhost:9000", expected: "ws://localhost:9000"},
		{input: "ws://peer:1/chat", expected: "ws://peer:1/chat"},
		{input: "wss://peer", expected: "wss://peer"},
		{input: "http://127.0.0.1:80", expected: "ws://127.0.0.1:80"},
		{input: "https://peer.example", expected: "wss://peer.example"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeerURL(tt.input))
		})
	}
}

func TestSplitSendValue(t *testing.T) {
	target, body, err := splitSendValue("localhost:9000;hi;there")
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", target)
	assert.Equal(t, "hi;there", body)

	_, _, err = splitSendValue("localhost:9000")
	assert.ErrorIs(t, err, cmderr.ErrInvalidArgument)

	_, _, err = splitSendValue("localhost:9000;")
	assert.ErrorIs(t, err, cmderr.ErrInvalidArgument)
}

func TestApplication_SendCommand(t *testing.T) {
	node, received, _ := receiver(t)
	server := httptest.NewServer(node.Handler())
	defer server.Close()

	sender := NewNode(WithPrinter(output.NewPrinter(output.Silent())))
	app, err := application.New("communicate", NewContext(), []string{"/send=" + server.URL + ";hello;again"},
		sender.Options(context.Background())...)
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "hello;again", waitMessage(t, received).Body)
}

func TestApplication_SendCommandDropsEmptyParts(t *testing.T) {
	node, received, _ := receiver(t)
	server := httptest.NewServer(node.Handler())
	defer server.Close()

	sender := NewNode(WithPrinter(output.NewPrinter(output.Silent())))
	app, err := application.New("communicate", NewContext(), []string{"/send=" + server.URL + ";a;;b;"},
		sender.Options(context.Background())...)
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "a;b", waitMessage(t, received).Body)
}

func TestApplication_Help(t *testing.T) {
	printer, buffer := output.NewCapturePrinter()
	node := NewNode(WithPrinter(printer))

	app, err := application.New("communicate", NewContext(), []string{"/help"}, node.Options(context.Background())...)
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, "ℹ Supported commands: listen, send\n", buffer.String())
}
