package protocol

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// LineConn carries protocol lines without their terminator.
type LineConn interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

type streamConn struct {
	rwc io.ReadWriteCloser
	r   *bufio.Reader

	mu sync.Mutex
	w  *bufio.Writer
}

// NewStreamConn frames lines with '\n' over a byte stream such as a TCP connection.
func NewStreamConn(rwc io.ReadWriteCloser) LineConn {
	return &streamConn{rwc: rwc, r: bufio.NewReader(rwc), w: bufio.NewWriter(rwc)}
}

func (c *streamConn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func (c *streamConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.WriteString(line); err != nil {
		return err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *streamConn) Close() error { return c.rwc.Close() }

type websocketConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// NewWebsocketConn sends each line as one text frame.
func NewWebsocketConn(ws *websocket.Conn) LineConn {
	return &websocketConn{ws: ws}
}

// ReadLine skips binary frames. A normal close reads as io.EOF.
func (c *websocketConn) ReadLine() (string, error) {
	for {
		kind, data, err := c.ws.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if kind == websocket.TextMessage {
			return strings.TrimRight(string(data), "\r\n"), nil
		}
	}
}

func (c *websocketConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *websocketConn) Close() error {
	c.mu.Lock()
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.ws.Close()
}
