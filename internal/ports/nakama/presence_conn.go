package nakama

import (
	"io"
	"net"
	"sync"

	"tchu/internal/protocol"
)

// replyBuffer bounds the replies a client may send ahead of the engine reading them.
const replyBuffer = 16

type outMsg struct {
	op   int64
	data []byte
}

// presenceConn carries protocol lines between the engine goroutine and one presence. The
// engine writes into an outbox that the match loop flushes every tick; replies delivered
// by the match loop wait in the inbox until the engine reads them.
type presenceConn struct {
	mu     sync.Mutex
	outbox []outMsg

	inbox     chan string
	closed    chan struct{}
	closeOnce sync.Once
}

var _ protocol.LineConn = (*presenceConn)(nil)

func newPresenceConn() *presenceConn {
	return &presenceConn{
		inbox:  make(chan string, replyBuffer),
		closed: make(chan struct{}),
	}
}

func (c *presenceConn) ReadLine() (string, error) {
	select {
	case line := <-c.inbox:
		return line, nil
	case <-c.closed:
		return "", io.EOF
	}
}

func (c *presenceConn) WriteLine(line string) error {
	return c.push(OpEngineLine, []byte(line))
}

func (c *presenceConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *presenceConn) push(op int64, data []byte) error {
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}
	c.mu.Lock()
	c.outbox = append(c.outbox, outMsg{op: op, data: data})
	c.mu.Unlock()
	return nil
}

// drain returns and clears the pending outbound messages.
func (c *presenceConn) drain() []outMsg {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.outbox
	c.outbox = nil
	return out
}

// deliver queues a reply line; it reports false when the inbox is full or closed.
func (c *presenceConn) deliver(line string) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.inbox <- line:
		return true
	default:
		return false
	}
}
