// Package client performs single-shot DNS lookups over UDP.
//
// The client is a thin transport around the wire codec: one query, one
// response, a deadline, and validation that the response actually answers
// the question that was asked. There is no retry, no TCP fallback on
// truncation, and no caching.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"

	"golang.org/x/net/idna"

	"github.com/dnsq/dnsq/internal/pool"
	"github.com/dnsq/dnsq/internal/wire"
)

// Default configuration values.
const (
	DefaultTimeout  = 3 * time.Second
	DefaultRecvSize = 2048
	DefaultPort     = "53"
)

// Client sends DNS queries over UDP. Safe for concurrent use.
type Client struct {
	timeout  time.Duration
	recvSize int
	recurse  bool
	logger   *slog.Logger

	bufs *pool.Pool[*[]byte]
}

// New creates a Client. Zero values select the defaults; logger may be nil.
func New(timeout time.Duration, recvSize int, recurse bool, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if recvSize <= 0 {
		recvSize = DefaultRecvSize
	}
	c := &Client{timeout: timeout, recvSize: recvSize, recurse: recurse, logger: logger}
	c.bufs = pool.New(func() *[]byte {
		b := make([]byte, recvSize)
		return &b
	})
	return c
}

// Result is the outcome of one completed lookup.
type Result struct {
	Server       string
	Msg          wire.Message
	RTT          time.Duration
	QuerySize    int
	ResponseSize int
}

// Lookup builds a query for name and qtype, exchanges it with server, and
// decodes and validates the response. The name is IDNA-normalized before
// encoding. A response whose RCODE signals an error is still returned as a
// Result; use ResponseError to map the RCODE.
func (c *Client) Lookup(ctx context.Context, server, name string, qtype wire.RecordType) (*Result, error) {
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return nil, fmt.Errorf("invalid name %q: %w", name, err)
	}

	id := randomID()
	query, err := wire.BuildQuery(id, ascii, qtype, c.recurse)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.Exchange(ctx, server, query)
	if err != nil {
		return nil, err
	}
	rtt := time.Since(start)

	msg, err := wire.ParseMessage(resp)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(id, ascii, qtype, msg); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("lookup complete",
			"server", server,
			"name", ascii,
			"qtype", qtype.String(),
			"rcode", msg.Header.RCode().String(),
			"answers", len(msg.Answers),
			"rtt_ms", rtt.Milliseconds(),
		)
	}

	return &Result{
		Server:       server,
		Msg:          msg,
		RTT:          rtt,
		QuerySize:    len(query),
		ResponseSize: len(resp),
	}, nil
}

// Exchange sends query to server over UDP and returns the raw response.
// Exactly one datagram is written and one read, under a deadline derived
// from the client timeout and the context, whichever expires first. A
// server without an explicit port gets port 53.
func (c *Client) Exchange(ctx context.Context, server string, query []byte) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", withDefaultPort(server))
	if err != nil {
		return nil, fmt.Errorf("resolve server %q: %w", server, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write(query); err != nil {
		return nil, err
	}

	bufp := c.bufs.Get()
	defer c.bufs.Put(bufp)
	n, err := conn.Read(*bufp)
	if err != nil {
		return nil, err
	}

	// Copy out: the pooled buffer is reused by the next exchange.
	resp := make([]byte, n)
	copy(resp, (*bufp)[:n])
	return resp, nil
}

// withDefaultPort appends ":53" when server carries no port.
func withDefaultPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, DefaultPort)
}

// randomID returns a transaction ID from the process-wide random source.
// The codec itself takes the ID as an explicit parameter; randomness is a
// client concern.
func randomID() uint16 {
	return uint16(rand.Uint32())
}
