package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sangga/csv"
	sanggahttp "github.com/fwojciec/sangga/http"
	"github.com/fwojciec/sangga/memory"
)

const (
	// limiterIdle is how long a rate-limit bucket survives without use.
	limiterIdle = 30 * time.Minute

	defaultSweepInterval = 5 * time.Minute
)

// Run executes the serve command. It blocks until the context is cancelled
// and then shuts the server down.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaultSweepInterval
	}

	sessions := memory.NewSessionStore(deps.Config.Idle())
	sessions.Open(c.SweepInterval)
	defer sessions.Close()

	s := sanggahttp.NewServer()
	s.Addr = c.Addr
	s.Sessions = sessions
	s.Search = deps.Search
	s.Exporter = csv.NewExporter()
	s.Logger = deps.Logger
	s.AllowedOrigins = deps.Config.AllowedOrigins
	s.SecureCookies = deps.Config.SecureCookies
	if c.SearchTimeout > 0 {
		s.SearchTimeout = c.SearchTimeout
	}

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to listen on %s: %s\n", c.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())
	deps.Logger.Info("server started", "url", s.URL(), "model", deps.Config.Model)

	ticker := time.NewTicker(c.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-deps.Ctx.Done():
			deps.Logger.Info("shutting down", "sessions", sessions.Len())
			return s.Close()
		case <-ticker.C:
			if deps.Limiter != nil {
				if n := deps.Limiter.Prune(limiterIdle); n > 0 {
					deps.Logger.Debug("pruned rate limiters", "count", n)
				}
			}
		}
	}
}
