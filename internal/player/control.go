package player

import (
	"fmt"
	"net"
	"time"
)

const (
	DefaultControlTimeout = 500 * time.Millisecond

	volumeCommand = "volume"
	logoutCommand = "logout"
)

// ControlClient speaks VLC's rc line protocol. Every directive opens a fresh
// connection, sends the command and a logout, then closes.
type ControlClient struct {
	Address string
	Timeout time.Duration
}

func NewControlClient(address string, timeout time.Duration) *ControlClient {
	if timeout <= 0 {
		timeout = DefaultControlTimeout
	}
	return &ControlClient{Address: address, Timeout: timeout}
}

func (c *ControlClient) SetVolume(level int) error {
	return c.send(fmt.Sprintf("%s %d", volumeCommand, level))
}

func (c *ControlClient) send(command string) error {
	conn, err := net.DialTimeout("tcp", c.Address, c.Timeout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrControlChannel, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(c.Timeout)); err != nil {
		return fmt.Errorf("%w: %w", ErrControlChannel, err)
	}

	if _, err := fmt.Fprintf(conn, "%s\n%s\n", command, logoutCommand); err != nil {
		return fmt.Errorf("%w: write to %s: %w", ErrControlChannel, c.Address, err)
	}
	return nil
}
