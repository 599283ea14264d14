package cli

import (
	"context"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/knowledge"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return newAPICommand("search <query>", "Search the knowledge base", func(ctx context.Context, p args.Parsed) error {
		req, err := knowledge.BuildSearch(p)
		if err != nil {
			return err
		}
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Search(ctx, key, req)
		if err != nil {
			return err
		}
		return a.render(resp, knowledge.AdviseSearch(resp))
	})
}
