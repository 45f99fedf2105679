// Package apiclient is a Go client for the j2dx management API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/j2dx/j2dx/apitypes"
)

// Client wraps the management routes with typed requests and responses.
type Client struct{ transport *Transport }

// New constructs a client for the API at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client over an existing Transport (e.g. a mock).
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the server identity and version.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	return call[apitypes.PingResponse](ctx, c.transport, "ping", nil)
}

// Families lists the controller families the server can emulate.
func (c *Client) Families() (*apitypes.FamiliesResponse, error) {
	return c.FamiliesCtx(context.Background())
}

func (c *Client) FamiliesCtx(ctx context.Context) (*apitypes.FamiliesResponse, error) {
	return call[apitypes.FamiliesResponse](ctx, c.transport, "families", nil)
}

// SessionList lists the connections that currently own a virtual controller.
func (c *Client) SessionList() (*apitypes.SessionListResponse, error) {
	return c.SessionListCtx(context.Background())
}

func (c *Client) SessionListCtx(ctx context.Context) (*apitypes.SessionListResponse, error) {
	return call[apitypes.SessionListResponse](ctx, c.transport, "session/list", nil)
}

// SessionClose releases the virtual controller of one session.
func (c *Client) SessionClose(id string) (*apitypes.SessionCloseResponse, error) {
	return c.SessionCloseCtx(context.Background(), id)
}

func (c *Client) SessionCloseCtx(ctx context.Context, id string) (*apitypes.SessionCloseResponse, error) {
	return call[apitypes.SessionCloseResponse](ctx, c.transport, "session/{id}/close", map[string]string{"id": id})
}

func call[T any](ctx context.Context, t *Transport, path string, params map[string]string) (*T, error) {
	line, err := t.DoCtx(ctx, path, nil, params)
	if err != nil {
		return nil, err
	}
	return parse[T](line)
}

func parse[T any](line string) (*T, error) {
	if line == "" {
		return nil, errors.New("empty response")
	}
	var ae apitypes.ApiError
	if err := json.Unmarshal([]byte(line), &ae); err == nil && ae.Error != "" {
		return nil, errors.New(ae.Error)
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
