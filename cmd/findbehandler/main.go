package main

import (
	"context"
	"findbehandler/cmd/findbehandler/commands"
	"findbehandler/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()

	err := commands.ExecuteContext(ctx)
	if err != nil {
		cancel()
		serviceutil.Fatal("failed to get providers", err)
	}
}
