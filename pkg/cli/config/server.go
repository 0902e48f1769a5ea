package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Server holds the HTTP listener settings
type Server struct {
	addr          string
	enableMetrics bool
	sessionTTL    time.Duration
}

func (x *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("AEGIS_ADDR"),
			Destination: &x.addr,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics on /metrics",
			Value:       true,
			Sources:     cli.EnvVars("AEGIS_METRICS"),
			Destination: &x.enableMetrics,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Lifetime of a login session",
			Value:       usecase.DefaultSessionTTL,
			Sources:     cli.EnvVars("AEGIS_SESSION_TTL"),
			Destination: &x.sessionTTL,
		},
	}
}

func (x *Server) Addr() string { return x.addr }

func (x *Server) MetricsEnabled() bool { return x.enableMetrics }

func (x *Server) SessionTTL() time.Duration { return x.sessionTTL }

func (x Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", x.addr),
		slog.Bool("metrics", x.enableMetrics),
		slog.String("session_ttl", x.sessionTTL.String()),
	)
}
