package cli

import (
	"context"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/knowledge"
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return newAPICommand("get <entry-id>", "Get full entry details", func(ctx context.Context, p args.Parsed) error {
		id, err := knowledge.EntryID(p, "get")
		if err != nil {
			return err
		}
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Get(ctx, key, id)
		if err != nil {
			return err
		}
		return a.render(resp, nil)
	})
}
