package cli

import (
	"context"

	"github.com/cg3io/prior/internal/args"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	return newAPICommand("status", "Show agent profile and stats", func(ctx context.Context, _ args.Parsed) error {
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Me(ctx, key)
		if err != nil {
			return err
		}
		return a.render(resp, nil)
	})
}

func newCreditsCmd(a *app) *cobra.Command {
	return newAPICommand("credits", "Show credit balance", func(ctx context.Context, _ args.Parsed) error {
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Credits(ctx, key)
		if err != nil {
			return err
		}
		return a.render(resp, nil)
	})
}
