package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Invoke calls the named edge function with a JSON body and decodes its
// JSON result into out.
func (c *Client) Invoke(ctx context.Context, name string, body any, out any) error {
	return c.do(ctx, http.MethodPost, "/functions/v1/"+url.PathEscape(name), nil, body, nil, out)
}

// RPC calls a database function exposed by the table API.
func (c *Client) RPC(ctx context.Context, name string, args any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	return c.do(ctx, http.MethodPost, "/rest/v1/rpc/"+url.PathEscape(name), nil, args, nil, out)
}
