package httpapi

import (
	"context"
)

// serverBaseCtx is canceled when the daemon shuts down, so an in-flight
// generation stream stops even if the UI keeps its request open. Defaults to
// Background until serve installs the signal context.
var serverBaseCtx = context.Background()

// SetBaseContext installs the daemon-lifetime context joined into streaming
// handlers. Passing nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives a context canceled when either input is done: the
// request context (client gone) or the daemon context (shutdown). The cancel
// func must be called when the handler returns to release the goroutine.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-a.Done():
		case <-b.Done():
		}
	}()
	return ctx, cancel
}
