// Package connectivity tracks whether the remote backend is considered
// reachable. The monitor only reports state; it never triggers a sync.
package connectivity

import (
	"context"
	"net"
	"net/url"
	"sync/atomic"
	"time"
)

type Monitor struct {
	online atomic.Bool
}

func New(initial bool) *Monitor {
	m := &Monitor{}
	m.online.Store(initial)
	return m
}

func (m *Monitor) Online() bool { return m.online.Load() }

// SetOnline records a transition and reports whether the state changed.
func (m *Monitor) SetOnline(v bool) (changed bool) {
	return m.online.Swap(v) != v
}

// Watch periodically dials the remote host and flips the flag on
// transitions. It returns when ctx is done.
func (m *Monitor) Watch(ctx context.Context, dsn string, interval time.Duration, onChange func(online bool)) {
	addr := dialAddr(dsn)
	if addr == "" {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			conn, err := net.DialTimeout("tcp", addr, 3*time.Second)
			if conn != nil {
				conn.Close()
			}
			if m.SetOnline(err == nil) && onChange != nil {
				onChange(err == nil)
			}
		}
	}
}

// dialAddr extracts host:port from a postgres:// style DSN, defaulting
// the port to 5432.
func dialAddr(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Port() == "" {
		return net.JoinHostPort(u.Hostname(), "5432")
	}
	return u.Host
}
