// Package showdown is the websocket client for a Pokémon Showdown server
package showdown

//go:generate mockgen -destination=mock/mock_client.go -package=showdownmock github.com/KirkDiggler/showdown-player/internal/clients/showdown Client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/showdown-player/internal/errors"
)

const (
	// DefaultServerURL is the main Showdown server
	DefaultServerURL = "wss://sim3.psim.us/showdown/websocket"

	defaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 10 * time.Second
)

// Client sends commands to and receives frames from a Showdown server
type Client interface {
	// Send writes "room|command"; room is empty for global commands
	Send(room, command string) error

	// Receive blocks until the next frame arrives or the connection closes
	Receive() (*Frame, error)

	// Close closes the connection and unblocks Receive
	Close() error
}

// Config holds the configuration for dialing a server
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("URL", c.URL, vb)
	if c.HandshakeTimeout < 0 {
		vb.InvalidField("HandshakeTimeout", "must not be negative")
	}
	if c.WriteTimeout < 0 {
		vb.InvalidField("WriteTimeout", "must not be negative")
	}
	return vb.Build()
}

type wsClient struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	writeMu sync.Mutex
}

// Dial connects to the server at cfg.URL
func Dial(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	handshake := cfg.HandshakeTimeout
	if handshake == 0 {
		handshake = defaultHandshakeTimeout
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = defaultWriteTimeout
	}

	dialer := &websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: handshake,
	}

	slog.Info("Connecting to showdown", "url", cfg.URL)
	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, errors.Unavailablef("failed to connect to %s: %v", cfg.URL, err)
	}

	return &wsClient{
		conn:         conn,
		writeTimeout: writeTimeout,
	}, nil
}

// Send writes "room|command"
func (c *wsClient) Send(room, command string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return errors.Unavailablef("failed to set write deadline: %v", err)
	}

	slog.Debug("Sending to showdown", "room", room, "command", command)
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(room+"|"+command)); err != nil {
		return errors.Unavailablef("failed to send command: %v", err)
	}
	return nil
}

// Receive blocks until the next frame arrives
func (c *wsClient) Receive() (*Frame, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, errors.Canceled("connection closed")
		}
		return nil, errors.Unavailablef("failed to read message: %v", err)
	}
	return ParseFrame(string(data)), nil
}

// Close sends a close frame and closes the connection
func (c *wsClient) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.writeMu.Unlock()

	return c.conn.Close()
}
