package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// run drives the fx application from start to shutdown. The context ends on
// SIGINT or SIGTERM; app.Done closes when a component requests shutdown.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("ticketline startup: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("ticketline shutdown: %w", err)
	}
	return nil
}
