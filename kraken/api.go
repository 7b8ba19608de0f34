package kraken

import (
	"context"
)

// Requester sends one authenticated request and decodes the reply into out.
// *Client implements it; Get, Post, Put and Delete are built on top.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

var _ Requester = (*Client)(nil)
