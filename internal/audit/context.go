package audit

import "context"

// Client identifies where a request came from.
type Client struct {
	IP        string
	UserAgent string
}

type clientKey struct{}

// WithClient attaches client details for events logged further down the call chain.
func WithClient(ctx context.Context, client Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

func ClientFromContext(ctx context.Context) (Client, bool) {
	client, ok := ctx.Value(clientKey{}).(Client)
	return client, ok
}
