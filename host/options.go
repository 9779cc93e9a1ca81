package host

import (
	"log/slog"
	"time"

	"github.com/localrivet/mcpchat/protocol"
)

// Option is a session configuration option.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRequestTimeout bounds each request/response exchange with the tool
// server. Zero disables the bound.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.requestTimeout = timeout
	}
}

// WithClientInfo overrides the name and version reported during the
// initialize handshake.
func WithClientInfo(info protocol.Implementation) Option {
	return func(s *Session) {
		s.clientInfo = info
	}
}
