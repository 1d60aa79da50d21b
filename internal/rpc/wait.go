package rpc

import (
	"context"
	"fmt"
	"net"
	"time"
)

// probeInterval is the delay between connection attempts in WaitForPort.
const probeInterval = 500 * time.Millisecond

// WaitForPort blocks until a TCP connection to host:port succeeds or the
// context is done. The daemon binds its RPC port early during startup, so
// a successful connect is a cheap readiness signal before issuing real
// RPC calls.
//
// Dialing the port (rather than trying to bind it) is deliberate: the
// port belongs to the daemon, and the question is "is someone answering",
// not "is it free".
func WaitForPort(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for {
		conn, err := net.DialTimeout("tcp", addr, probeInterval)
		if err == nil {
			_ = conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s: %w", addr, ctx.Err())
		case <-ticker.C:
		}
	}
}
