package client

import (
	"net/http"
	"time"

	"github.com/okian/fightpicks/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSessionCookie attaches the signed-in session to every request.
// An empty token leaves requests anonymous.
func WithSessionCookie(name, token string) Option {
	return func(c *Client) {
		if name != "" {
			c.cookieName = name
		}
		c.cookieValue = token
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
