package cli

import (
	"context"
	"fmt"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/knowledge"
	"github.com/spf13/cobra"
)

func newContributeCmd(a *app) *cobra.Command {
	return newAPICommand("contribute", "Contribute a solution", func(ctx context.Context, p args.Parsed) error {
		req, err := knowledge.BuildContribute(p)
		if err != nil {
			return err
		}
		for _, w := range req.Warnings {
			fmt.Fprintln(a.stderr, w)
		}
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Contribute(ctx, key, req)
		if err != nil {
			return err
		}
		return a.render(resp, knowledge.AdviseContribute(resp, req))
	})
}
