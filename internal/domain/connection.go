package domain

import (
	"fmt"
	"time"
)

// ConnectionStatus is the lifecycle state of a platform connection.
type ConnectionStatus string

const (
	ConnectionPending      ConnectionStatus = "pending"
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionError        ConnectionStatus = "error"
	ConnectionDisconnected ConnectionStatus = "disconnected"
)

// Connection represents one store's link to a platform, keyed by project,
// environment, and the platform-side shop identifier.
type Connection struct {
	ID          string           `json:"id"`
	ProjectID   string           `json:"project_id"`
	Environment string           `json:"environment"`
	Platform    Platform         `json:"platform"`
	ShopDomain  string           `json:"shop_domain"`
	Status      ConnectionStatus `json:"status"`
	LastError   string           `json:"last_error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Transition enforces the connection state machine:
// pending → connected | error; connected → disconnected | error;
// error → connected (recovered by re-running TestConnection) | disconnected.
func (c *Connection) Transition(to ConnectionStatus) error {
	allowed := map[ConnectionStatus][]ConnectionStatus{
		ConnectionPending:      {ConnectionConnected, ConnectionError},
		ConnectionConnected:    {ConnectionDisconnected, ConnectionError},
		ConnectionError:        {ConnectionConnected, ConnectionDisconnected},
		ConnectionDisconnected: {},
	}
	for _, s := range allowed[c.Status] {
		if s == to {
			c.Status = to
			if to != ConnectionError {
				c.LastError = ""
			}
			return nil
		}
	}
	return fmt.Errorf("invalid connection transition %s -> %s", c.Status, to)
}
